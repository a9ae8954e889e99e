package tutor

import (
	"strings"
	"testing"

	"github.com/abhisek/maestro/internal/curriculum"
)

func TestSystemInstruction_NoLesson(t *testing.T) {
	got := SystemInstruction(curriculum.LevelBeginner, nil, nil, "")

	if !strings.Contains(got, "Sam's Maestro") {
		t.Error("missing persona name")
	}
	if !strings.Contains(got, "help the user master Spanish from Beginner level") {
		t.Errorf("missing level line:\n%s", got)
	}
	if strings.Contains(got, "CURRENT LESSON") {
		t.Error("lesson block should be absent without a topic")
	}
}

func TestSystemInstruction_WithLesson(t *testing.T) {
	topic, err := curriculum.GetTopic("module-1")
	if err != nil {
		t.Fatal(err)
	}
	sub, err := curriculum.GetSubTopic("1.1")
	if err != nil {
		t.Fatal(err)
	}

	got := SystemInstruction(curriculum.LevelBeginner, &topic, &sub, "Sam")

	if !strings.Contains(got, "help Sam master Spanish") {
		t.Error("user name not woven in")
	}
	if !strings.Contains(got, "CURRENT LESSON") {
		t.Error("missing lesson block")
	}
	if !strings.Contains(got, "[Topic: "+topic.Title+" | Sub-Topic: "+sub.Title+"]") {
		t.Error("missing lesson tag line")
	}
	if !strings.Contains(got, "Start every message with ["+sub.Title+"]") {
		t.Error("missing mandatory lesson prefix rule")
	}
}

func TestLiveSystemInstruction(t *testing.T) {
	got := LiveSystemInstruction(curriculum.LevelExpert, nil, nil, "Ana")
	if !strings.Contains(got, "LIVE MODE") {
		t.Error("missing live mode suffix")
	}
	if !strings.HasPrefix(got, SystemInstruction(curriculum.LevelExpert, nil, nil, "Ana")) {
		t.Error("live instruction should extend the base instruction")
	}
}

func TestIntroMessage(t *testing.T) {
	topic := curriculum.FirstTopic()

	got := IntroMessage(topic, "Sam")
	if !strings.HasPrefix(got, "¡Hola Sam!") {
		t.Errorf("greeting = %q", got)
	}
	if !strings.Contains(got, topic.Title) || !strings.Contains(got, topic.Description) {
		t.Error("intro should name the topic and its description")
	}

	anon := IntroMessage(topic, "")
	if !strings.HasPrefix(anon, "¡Hola!") {
		t.Errorf("anonymous greeting = %q", anon)
	}
}
