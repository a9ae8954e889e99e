package curriculum

import "fmt"

func init() {
	c = buildCatalog(seedTopics())
	if err := Validate(); err != nil {
		panic(fmt.Sprintf("curriculum seed invalid: %v", err))
	}
}

// seedTopics returns the full Spanish curriculum: a linear chain of 15
// modules spanning Beginner (A1/A2) through Expert (C1/C2).
func seedTopics() []Topic {
	return []Topic{
		// --- Beginner (A1/A2) ---
		{
			ID:            "module-1",
			Title:         "Phonetics & Script",
			Description:   "The Alphabet, Sounds, and Intonation.",
			Emoji:         "🗣️",
			RequiredLevel: LevelBeginner,
			Order:         1,
			SubTopics: []SubTopic{
				{ID: "1.1", Title: "1.1 The Alphabet", Description: "Writing & Reading characters."},
				{ID: "1.2", Title: "1.2 Vowel Sounds", Description: "Vowels & Diacritics."},
				{ID: "1.3", Title: "1.3 Consonants", Description: "Clusters & Difficult Sounds."},
				{ID: "1.4", Title: "1.4 Intonation", Description: "Tone and Stress rules."},
			},
		},
		{
			ID:            "module-2",
			Title:         "Identity & Intro",
			Description:   "Who you are and where you fit in.",
			Emoji:         "👋",
			RequiredLevel: LevelBeginner,
			Order:         2,
			SubTopics: []SubTopic{
				{ID: "2.1", Title: "2.1 Greetings", Description: "Morning, Noon, Night, Formal, Slang."},
				{ID: "2.2", Title: "2.2 The Verb \"To Be\"", Description: "Ser/Estar & Self-Introduction."},
				{ID: "2.3", Title: "2.3 Professions", Description: "Titles & Jobs."},
				{ID: "2.4", Title: "2.4 Family", Description: "Immediate vs. Extended relationships."},
			},
		},
		{
			ID:            "module-3",
			Title:         "Survival Navigation",
			Description:   "Numbers, Time, and Getting around.",
			Emoji:         "🧭",
			RequiredLevel: LevelBeginner,
			Order:         3,
			SubTopics: []SubTopic{
				{ID: "3.1", Title: "3.1 Numbers", Description: "Cardinals, Ordinals, Phone #s, Prices."},
				{ID: "3.2", Title: "3.2 Time", Description: "Clock, Days, Months, Seasons."},
				{ID: "3.3", Title: "3.3 Locations", Description: "City infrastructure & \"Where is...?\""},
				{ID: "3.4", Title: "3.4 Transport", Description: "Bus, Train, Taxi, Tickets."},
			},
		},
		{
			ID:            "module-4",
			Title:         "The Physical World",
			Description:   "Objects, Body, and Clothing.",
			Emoji:         "🌎",
			RequiredLevel: LevelBeginner,
			Order:         4,
			SubTopics: []SubTopic{
				{ID: "4.1", Title: "4.1 Colors & Shapes", Description: "Visual descriptions."},
				{ID: "4.2", Title: "4.2 Common Objects", Description: "Classroom, Office, Daily items."},
				{ID: "4.3", Title: "4.3 Clothing", Description: "Accessories & Weather-appropriate dressing."},
				{ID: "4.4", Title: "4.4 The Body", Description: "Body parts & basic hygiene."},
			},
		},
		{
			ID:            "module-5",
			Title:         "Food & Dining",
			Description:   "Ingredients, Restaurants, and Shopping.",
			Emoji:         "🥘",
			RequiredLevel: LevelBeginner,
			Order:         5,
			SubTopics: []SubTopic{
				{ID: "5.1", Title: "5.1 Ingredients", Description: "Fruits, Veggies, Meats, Dairy."},
				{ID: "5.2", Title: "5.2 Utensils", Description: "Table Setting & Cutlery."},
				{ID: "5.3", Title: "5.3 Restaurants", Description: "Ordering & Dietary restrictions."},
				{ID: "5.4", Title: "5.4 Shopping", Description: "Supermarket, weights & measures."},
			},
		},
		{
			ID:            "module-6",
			Title:         "Basic Actions",
			Description:   "Present tense and questions.",
			Emoji:         "⚡",
			RequiredLevel: LevelBeginner,
			Order:         6,
			SubTopics: []SubTopic{
				{ID: "6.1", Title: "6.1 Regular Verbs", Description: "Present Tense & Daily routine."},
				{ID: "6.2", Title: "6.2 Irregular Verbs", Description: "Present Tense exceptions."},
				{ID: "6.3", Title: "6.3 Negatives", Description: "Making negative statements."},
				{ID: "6.4", Title: "6.4 Questions", Description: "Who, What, Where, When, Why, How."},
			},
		},

		// --- Intermediate (B1/B2) ---
		{
			ID:            "module-7",
			Title:         "Expanding Time",
			Description:   "Past, Future, and Conditionals.",
			Emoji:         "⏳",
			RequiredLevel: LevelIntermediate,
			Order:         7,
			SubTopics: []SubTopic{
				{ID: "7.1", Title: "7.1 Past Tense", Description: "Completed actions (Preterite)."},
				{ID: "7.2", Title: "7.2 Imperfect Tense", Description: "Past habits & descriptions."},
				{ID: "7.3", Title: "7.3 Future Tense", Description: "Plans & Predictions."},
				{ID: "7.4", Title: "7.4 Conditional", Description: "Would, Could, Should."},
			},
		},
		{
			ID:            "module-8",
			Title:         "Home & Environment",
			Description:   "Housing, Chores, and Nature.",
			Emoji:         "🏡",
			RequiredLevel: LevelIntermediate,
			Order:         8,
			SubTopics: []SubTopic{
				{ID: "8.1", Title: "8.1 Housing", Description: "Rent, furniture, rooms."},
				{ID: "8.2", Title: "8.2 Chores", Description: "Maintenance & Cleaning."},
				{ID: "8.3", Title: "8.3 Nature", Description: "Animals, landscapes, weather."},
			},
		},
		{
			ID:            "module-9",
			Title:         "Health & Emergency",
			Description:   "Medical and Safety.",
			Emoji:         "🚑",
			RequiredLevel: LevelIntermediate,
			Order:         9,
			SubTopics: []SubTopic{
				{ID: "9.1", Title: "9.1 Pharmacy", Description: "Medicine & prescriptions."},
				{ID: "9.2", Title: "9.2 Doctor", Description: "Symptoms, injuries, anatomy."},
				{ID: "9.3", Title: "9.3 Emergency", Description: "Police, Fire, Theft reporting."},
			},
		},
		{
			ID:            "module-10",
			Title:         "Social & Opinions",
			Description:   "Hobbies, Emotions, and Debate.",
			Emoji:         "🎭",
			RequiredLevel: LevelIntermediate,
			Order:         10,
			SubTopics: []SubTopic{
				{ID: "10.1", Title: "10.1 Hobbies", Description: "Sports, Music, Art."},
				{ID: "10.2", Title: "10.2 Emotions", Description: "Joy, Anger, Fear, Surprise."},
				{ID: "10.3", Title: "10.3 Debate", Description: "Agreeing, Disagreeing, Persuading."},
				{ID: "10.4", Title: "10.4 Personality", Description: "Describing character."},
			},
		},

		// --- Expert (C1/C2) ---
		{
			ID:            "module-11",
			Title:         "Professional",
			Description:   "Business and Career.",
			Emoji:         "💼",
			RequiredLevel: LevelExpert,
			Order:         11,
			SubTopics: []SubTopic{
				{ID: "11.1", Title: "11.1 Interviews", Description: "CVs & Job Interviews."},
				{ID: "11.2", Title: "11.2 Negotiation", Description: "Business Etiquette."},
				{ID: "11.3", Title: "11.3 Office", Description: "Admin & Tech terms."},
				{ID: "11.4", Title: "11.4 Finance", Description: "Banking & Economy."},
			},
		},
		{
			ID:            "module-12",
			Title:         "Media & Events",
			Description:   "Politics, Law, and News.",
			Emoji:         "📰",
			RequiredLevel: LevelExpert,
			Order:         12,
			SubTopics: []SubTopic{
				{ID: "12.1", Title: "12.1 Politics", Description: "Government & Systems."},
				{ID: "12.2", Title: "12.2 Law", Description: "Justice vocabulary."},
				{ID: "12.3", Title: "12.3 Sci-Tech", Description: "Trends & Innovation."},
				{ID: "12.4", Title: "12.4 The News", Description: "Reading vs Watching."},
			},
		},
		{
			ID:            "module-13",
			Title:         "Culture & Idioms",
			Description:   "Proverbs, Slang, and Humor.",
			Emoji:         "🎨",
			RequiredLevel: LevelExpert,
			Order:         13,
			SubTopics: []SubTopic{
				{ID: "13.1", Title: "13.1 Proverbs", Description: "Old Sayings."},
				{ID: "13.2", Title: "13.2 Slang", Description: "Street Language by region."},
				{ID: "13.3", Title: "13.3 Humor", Description: "Sarcasm & Irony."},
				{ID: "13.4", Title: "13.4 Pop Culture", Description: "References & Trends."},
			},
		},
		{
			ID:            "module-14",
			Title:         "Complex Grammar",
			Description:   "Subjunctive and Advanced Tenses.",
			Emoji:         "🧠",
			RequiredLevel: LevelExpert,
			Order:         14,
			SubTopics: []SubTopic{
				{ID: "14.1", Title: "14.1 Subjunctive", Description: "Wishes, doubts, hypotheticals."},
				{ID: "14.2", Title: "14.2 Passive Voice", Description: "Active vs Passive."},
				{ID: "14.3", Title: "14.3 Compounds", Description: "Compound Tenses."},
			},
		},
		{
			ID:            "module-15",
			Title:         "Arts & Literature",
			Description:   "Analysis and Creative Writing.",
			Emoji:         "📚",
			RequiredLevel: LevelExpert,
			Order:         15,
			SubTopics: []SubTopic{
				{ID: "15.1", Title: "15.1 Analysis", Description: "Poetry & Prose."},
				{ID: "15.2", Title: "15.2 History", Description: "Historical texts."},
				{ID: "15.3", Title: "15.3 Writing", Description: "Creative Writing."},
			},
		},
	}
}
