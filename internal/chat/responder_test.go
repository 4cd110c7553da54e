package chat

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/profile"
)

func newTestResponder(t *testing.T) *Responder {
	t.Helper()
	p, err := profile.Default()
	require.NoError(t, err)
	return New(p)
}

func TestRespondRoutesToRule(t *testing.T) {
	r := newTestResponder(t)

	tests := []struct {
		input string
		want  RuleID
	}{
		{"How can I contact you?", RuleContact},
		{"What is your educational background?", RuleEducation},
		{"What are your skills?", RuleSkills},
		{"Do you know machine learning?", RuleMachineLearning},
		{"Have you used TensorFlow or PyTorch?", RuleMachineLearning},
		{"Do you do data science work?", RuleDataScience},
		{"Have you made any websites?", RuleWebDevelopment},
		{"What projects have you worked on?", RuleProjects},
		{"Tell me about the Smart Helmet project", RuleProject},
		{"How does the crop disease detector work?", RuleProject},
		{"Tell me about your work experience", RuleExperience},
		{"What did you do at IBM?", RuleIBM},
		{"What does an innovation ambassador do?", RuleAmbassador},
		{"How did you do at SIH?", RuleSIH},
		{"Which college do you attend?", RuleCollege},
		{"Do you like Python?", RulePython},
		{"What are your hobbies?", RuleInterests},
		{"Do you hold any patent?", RulePatent},
		{"Have you won any hackathons?", RuleHackathon},
		{"What certifications do you have?", RuleAchievements},
		{"Are you open to new opportunities?", RuleHiring},
		{"Tell me about yourself", RuleAbout},
		{"Who is Aarav?", RuleAbout},
		{"aarav", RuleAbout},
		{"hello", RuleGreeting},
		{"Hello!", RuleGreeting},
		{"HI", RuleGreeting},
		{"hey there", RuleGreeting},
		{"good morning", RuleGreeting},
		{"do you know java well", RuleDefault},
		{"ok sure", RuleDefault},
		{"What is the capital of France?", RuleOffTopic},
		{"How is the weather today?", RuleOffTopic},
		{"asdf123", RuleTooShort},
		{"ok", RuleTooShort},
		{"", RuleTooShort},
		{"Do you have a girlfriend?", RulePersonal},
		{"नमस्ते", RuleLanguage},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := r.Respond(tt.input)
			assert.Equal(t, tt.want, got.Rule)
			assert.NotEmpty(t, got.Text)
		})
	}
}

func TestLanguageNotice(t *testing.T) {
	r := newTestResponder(t)
	inputs := []string{
		// Hindi
		"मुझे अपने प्रोजेक्ट्स के बारे में बताइए",
		// Tamil
		"உங்கள் திறன்கள் என்ன",
		// Telugu
		"మీ ప్రాజెక్టులు ఏమిటి",
		// Chinese
		"你的技能是什么",
		// Arabic
		"ما هي مهاراتك",
		// Japanese
		"あなたのスキルは何ですか",
		"What are your skills? 你好",
		"café projects",
	}
	for _, in := range inputs {
		got := r.Respond(in)
		assert.Equal(t, LanguageNotice, got.Text, in)
		assert.Equal(t, RuleLanguage, got.Rule, in)
	}
}

func TestTooBrief(t *testing.T) {
	r := newTestResponder(t)
	for _, in := range []string{"a", "ok", "  x  ", "??", ""} {
		assert.Equal(t, TooBrief, r.Respond(in).Text, "%q", in)
	}

	for _, in := range []string{"hi", "Hi", "HEY", "hello"} {
		got := r.Respond(in)
		assert.NotEqual(t, TooBrief, got.Text, in)
		assert.Equal(t, RuleGreeting, got.Rule, in)
	}
}

func TestSingleWordGetsClarification(t *testing.T) {
	r := newTestResponder(t)
	for _, in := range []string{"asdf123", "python", "projects", "whatever"} {
		got := r.Respond(in)
		assert.Equal(t, Clarify, got.Text, in)
		assert.Equal(t, RuleTooShort, got.Rule, in)
	}
}

func TestEveryGreetingWordGreets(t *testing.T) {
	r := newTestResponder(t)
	for _, in := range greetingWords {
		assert.Equal(t, RuleGreeting, r.Respond(in).Rule, in)
	}

	for _, in := range []string{"namaste", "greetings", "hiya", "hii"} {
		assert.Equal(t, RuleTooShort, r.Respond(in).Rule, in)
	}
}

func TestPersonalRefusalWins(t *testing.T) {
	r := newTestResponder(t)
	inputs := []string{
		"Do you have a girlfriend?",
		"What is your salary expectation for the IBM role?",
		"What is your age and what are your skills?",
		"Tell me about your GIRLFRIEND and your projects",
		"are you married",
		"what is your phone number",
	}
	for _, in := range inputs {
		got := r.Respond(in)
		assert.Equal(t, PersonalRefusal, got.Text, in)
		assert.Equal(t, RulePersonal, got.Rule, in)
	}
}

func TestOffTopicGate(t *testing.T) {
	r := newTestResponder(t)

	got := r.Respond("What is the capital of France?")
	assert.Equal(t, OffTopic, got.Text)

	// the owner's name lets a message through the gate
	got = r.Respond("does aarav enjoy cricket")
	assert.NotEqual(t, RuleOffTopic, got.Rule)

	// short multi-word input is not gated
	got = r.Respond("ok sure")
	assert.Equal(t, RuleDefault, got.Rule)
}

func TestSkillsIncludesFirstFourProgrammingSkills(t *testing.T) {
	r := newTestResponder(t)
	got := r.Respond("What are your skills?")

	require.Equal(t, RuleSkills, got.Rule)
	for _, name := range profile.SkillNames(r.Profile().Skills.Programming, 4) {
		assert.Contains(t, got.Text, name)
	}
	assert.Equal(t, []string{"skills"}, got.Sources)
}

func TestSmartHelmetProject(t *testing.T) {
	r := newTestResponder(t)
	got := r.Respond("Tell me about the Smart Helmet project")

	assert.Equal(t, RuleProject, got.Rule)
	assert.Equal(t, "Smart Helmet", got.Project)
	assert.Contains(t, got.Text, "patent")
	assert.Contains(t, got.Text, "IoT")
}

func TestProjectListHasOneBlockPerProjectInOrder(t *testing.T) {
	r := newTestResponder(t)
	got := r.Respond("What projects have you worked on?")
	require.Equal(t, RuleProjects, got.Rule)

	projects := r.Profile().Projects
	assert.Equal(t, len(projects), strings.Count(got.Text, projectBlockPrefix))

	last := -1
	for _, pr := range projects {
		idx := strings.Index(got.Text, projectBlockPrefix+"**"+pr.Name+"**")
		require.NotEqual(t, -1, idx, pr.Name)
		assert.Greater(t, idx, last, "project %q out of order", pr.Name)
		last = idx
	}
}

func TestMachineLearningSubBranches(t *testing.T) {
	r := newTestResponder(t)

	basic := r.Respond("Do you know machine learning?")
	advanced := r.Respond("Have you used TensorFlow or PyTorch?")

	require.Equal(t, RuleMachineLearning, basic.Rule)
	require.Equal(t, RuleMachineLearning, advanced.Rule)
	assert.NotEqual(t, basic.Text, advanced.Text)
	assert.Contains(t, advanced.Text, "**TensorFlow** (82%)")
}

func TestPythonDefersToSkillsWhenProgrammingMentioned(t *testing.T) {
	r := newTestResponder(t)
	assert.Equal(t, RuleSkills, r.Respond("Tell me about your python programming").Rule)
	assert.Equal(t, RulePython, r.Respond("Tell me about your python work").Rule)
}

func TestDispatchOrderIsFirstMatchWins(t *testing.T) {
	r := newTestResponder(t)
	// contact comes before projects
	assert.Equal(t, RuleContact, r.Respond("Can I email you about your projects?").Rule)
	// web development comes before projects
	assert.Equal(t, RuleWebDevelopment, r.Respond("Which react projects have you built?").Rule)
	// hackathon comes before achievements
	assert.Equal(t, RuleHackathon, r.Respond("Which hackathon awards have you won?").Rule)
}

func TestKeywordEmbeddedInWordStillMatches(t *testing.T) {
	r := newTestResponder(t)
	assert.Equal(t, RuleSkills, r.Respond("list your skillset please").Rule)
}

func TestRespondIsIdempotent(t *testing.T) {
	r := newTestResponder(t)
	for _, in := range []string{"What are your skills?", "What projects have you worked on?", "hello", "asdf123"} {
		assert.Equal(t, r.Respond(in), r.Respond(in), in)
	}
}

func TestRespondConcurrentUse(t *testing.T) {
	r := newTestResponder(t)
	want := r.Respond("Tell me about your work experience")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, r.Respond("Tell me about your work experience"))
		}()
	}
	wg.Wait()
}

func TestMissingProfileDataFallsBack(t *testing.T) {
	r := New(&profile.Profile{Name: "Jane Doe"})

	for _, in := range []string{
		"What are your skills?",
		"What did you do at IBM?",
		"What projects have you worked on?",
		"Tell me about your work experience",
	} {
		got := r.Respond(in)
		assert.Equal(t, Fallback, got.Text, in)
		assert.Equal(t, RuleDefault, got.Rule, in)
	}
}

func TestNilProfileNeverPanics(t *testing.T) {
	r := New(nil)
	for _, in := range []string{"", "hello", "What are your skills?", "Tell me about yourself", "asdf"} {
		got := r.Respond(in)
		assert.NotEmpty(t, got.Text, in)
	}
}

func TestPanickingRuleFallsBack(t *testing.T) {
	r := newTestResponder(t)
	r.rules = append([]rule{{
		id:    "boom",
		match: func(*query) bool { return true },
		respond: func(*query) (Result, error) {
			panic("boom")
		},
	}}, r.rules...)

	got := r.Respond("What are your skills?")
	assert.Equal(t, Fallback, got.Text)
	assert.Equal(t, RuleDefault, got.Rule)
}

func TestReplyUsesLatestUserTurn(t *testing.T) {
	r := newTestResponder(t)
	history := []Turn{
		{Role: RoleUser, Content: "What are your skills?"},
		{Role: RoleAssistant, Content: "lots"},
		{Role: RoleUser, Content: "Which college do you attend?"},
		{Role: RoleAssistant, Content: "..."},
	}
	assert.Equal(t, RuleCollege, r.Reply(history).Rule)
	assert.Equal(t, RuleTooShort, r.Reply(nil).Rule)
}

func TestSourcesAreNotShared(t *testing.T) {
	r := newTestResponder(t)
	first := r.Respond("What are your skills?")
	first.Sources[0] = "mutated"
	assert.Equal(t, []string{"skills"}, r.Respond("What are your skills?").Sources)
}
