// Package chat implements the portfolio assistant: an ordered chain of
// keyword rules that maps a visitor's message to a canned reply rendered
// from the profile.
package chat

import (
	"strings"

	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/profile"
)

// RuleID names the rule that produced a reply.
type RuleID string

const (
	RuleLanguage        RuleID = "language"
	RuleTooShort        RuleID = "too_short"
	RulePersonal        RuleID = "personal"
	RuleOffTopic        RuleID = "off_topic"
	RuleContact         RuleID = "contact"
	RuleEducation       RuleID = "education"
	RuleSkills          RuleID = "skills"
	RuleMachineLearning RuleID = "machine_learning"
	RuleDataScience     RuleID = "data_science"
	RuleWebDevelopment  RuleID = "web_development"
	RuleProjects        RuleID = "projects"
	RuleProject         RuleID = "project"
	RuleExperience      RuleID = "experience"
	RuleIBM             RuleID = "ibm"
	RuleAmbassador      RuleID = "innovation_ambassador"
	RuleSIH             RuleID = "sih"
	RuleCollege         RuleID = "college"
	RulePython          RuleID = "python"
	RuleInterests       RuleID = "interests"
	RulePatent          RuleID = "patent"
	RuleHackathon       RuleID = "hackathon"
	RuleAchievements    RuleID = "achievements"
	RuleHiring          RuleID = "hiring"
	RuleAbout           RuleID = "about"
	RuleGreeting        RuleID = "greeting"
	RuleDefault         RuleID = "default"
)

// Result is one reply. Project is set when RuleProject matched a named
// project; Sources lists the profile sections the reply was built from.
type Result struct {
	Text    string   `json:"response"`
	Rule    RuleID   `json:"rule"`
	Project string   `json:"project,omitempty"`
	Sources []string `json:"sources,omitempty"`
}

// query is the input in the forms the rules match against.
type query struct {
	raw    string // as received
	lower  string // trimmed and lower-cased
	words  string // lower with punctuation dropped and runs of whitespace collapsed
	padded string // " " + words + " "
}

// punctuation is dropped before matching. A period only counts when it ends
// a word, so "b.tech" and "node.js" survive.
const punctuation = "?!,;:\"()"

func newQuery(input string) *query {
	lower := strings.ToLower(strings.TrimSpace(input))
	var b strings.Builder
	for i, r := range lower {
		switch {
		case strings.ContainsRune(punctuation, r):
			b.WriteByte(' ')
		case r == '.' && (i+1 == len(lower) || lower[i+1] == ' '):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	words := strings.Join(strings.Fields(b.String()), " ")
	return &query{
		raw:    input,
		lower:  lower,
		words:  words,
		padded: " " + words + " ",
	}
}

func (q *query) has(keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(q.padded, k) {
			return true
		}
	}
	return false
}

type rule struct {
	id      RuleID
	match   func(q *query) bool
	respond func(q *query) (Result, error)
}

type projectKey struct {
	keys    []string
	project profile.Project
}

// Responder classifies messages. It holds no mutable state after New and is
// safe for concurrent use.
type Responder struct {
	profile     *profile.Profile
	rules       []rule
	shortAllow  map[string]bool
	greetings   map[string]bool
	nameTokens  []string
	allowList   []string
	projectKeys []projectKey
	projectAny  []string
	aboutAny    []string
}

// New builds a Responder over p. A nil profile behaves like an empty one and
// every profile-backed rule falls back to the default reply.
func New(p *profile.Profile) *Responder {
	if p == nil {
		p = &profile.Profile{}
	}
	r := &Responder{
		profile:    p,
		shortAllow: make(map[string]bool),
		greetings:  make(map[string]bool),
	}

	for _, g := range shortGreetings {
		r.shortAllow[g] = true
	}
	for _, g := range greetingWords {
		r.greetings[g] = true
	}
	if first := p.FirstName(); first != "" {
		r.shortAllow[first] = true
		r.nameTokens = append(r.nameTokens, first)
	}
	if full := strings.ToLower(strings.TrimSpace(p.Name)); full != "" && full != p.FirstName() {
		r.nameTokens = append(r.nameTokens, full)
	}

	r.projectAny = append(r.projectAny, projectKeywords...)
	for _, pr := range p.Projects {
		pk := projectKey{project: pr}
		for _, k := range append([]string{pr.Name}, pr.Aliases...) {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			pk.keys = append(pk.keys, k)
			r.projectAny = append(r.projectAny, k)
		}
		r.projectKeys = append(r.projectKeys, pk)
	}
	r.aboutAny = append(append([]string{}, aboutKeywords...), r.nameTokens...)

	r.allowList = r.buildAllowList()
	r.rules = r.buildRules()
	return r
}

// Profile returns the profile the Responder answers from.
func (r *Responder) Profile() *profile.Profile {
	return r.profile
}

// Reply answers the most recent user turn in history. Earlier turns are
// not consulted.
func (r *Responder) Reply(history []Turn) Result {
	msg, _ := LastUserMessage(history)
	return r.Respond(msg)
}

// Respond classifies input and returns the reply of the first matching rule.
// It never fails: a rule that cannot render, or panics, yields the default
// reply.
func (r *Responder) Respond(input string) (res Result) {
	q := newQuery(input)
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Msg("chat rule panicked")
			res = fallbackResult()
		}
	}()

	for _, rl := range r.rules {
		if !rl.match(q) {
			continue
		}
		out, err := rl.respond(q)
		if err != nil || strings.TrimSpace(out.Text) == "" {
			logger.Debug().Err(err).Str("rule", string(rl.id)).Msg("rule could not render, using fallback")
			return fallbackResult()
		}
		if out.Rule == "" {
			out.Rule = rl.id
		}
		return out
	}
	return fallbackResult()
}

func fallbackResult() Result {
	return Result{Text: Fallback, Rule: RuleDefault}
}

func (r *Responder) buildAllowList() []string {
	// Greetings are word-anchored so "hi" does not admit "this" or "which".
	var out []string
	for _, g := range greetingWords {
		out = append(out, " "+g+" ")
	}
	tables := [][]string{
		contactKeywords, educationKeywords, skillsKeywords,
		mlAdvancedKeywords, mlBasicKeywords, dataScienceKeywords, webKeywords,
		r.projectAny, experienceKeywords, ibmKeywords, ambassadorKeywords,
		sihKeywords, collegeKeywords, pythonKeywords, interestKeywords,
		patentKeywords, hackathonKeywords, achievementKeywords, hiringKeywords,
		aboutKeywords,
	}
	for _, t := range tables {
		out = append(out, t...)
	}

	// Profile terms shorter than three letters would match almost anything.
	addTerm := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if len(s) >= 3 {
			out = append(out, s)
		}
	}
	for _, g := range r.profile.Skills.Groups() {
		for _, s := range g.Skills {
			addTerm(s.Name)
		}
	}
	for _, e := range r.profile.Experience {
		addTerm(e.Organization)
	}
	for _, c := range r.profile.Certificates {
		addTerm(c.Name)
	}
	for _, i := range r.profile.Interests {
		addTerm(i)
	}
	return out
}

func (r *Responder) buildRules() []rule {
	p := r.profile
	return []rule{
		{RuleLanguage, func(q *query) bool { return isNonEnglish(q.raw) }, fixed(LanguageNotice)},
		{RuleTooShort, r.isTooShort, func(q *query) (Result, error) {
			if len(q.lower) < 3 {
				return Result{Text: TooBrief}, nil
			}
			return Result{Text: Clarify}, nil
		}},
		{RulePersonal, matchAny(personalKeywords), fixed(PersonalRefusal)},
		{RuleOffTopic, r.isOffTopic, fixed(OffTopic)},

		{RuleContact, matchAny(contactKeywords), render(p, renderContact, "contact")},
		{RuleEducation, matchAny(educationKeywords), render(p, renderEducation, "education")},
		{RuleSkills, matchAny(skillsKeywords), render(p, renderSkills, "skills")},
		{RuleMachineLearning, matchAny(mlAdvancedKeywords, mlBasicKeywords), func(q *query) (Result, error) {
			fn := renderMLBasic
			if q.has(mlAdvancedKeywords) {
				fn = renderMLAdvanced
			}
			return render(p, fn, "skills.machine_learning", "projects")(q)
		}},
		{RuleDataScience, matchAny(dataScienceKeywords), render(p, renderDataScience, "skills.data_science", "projects")},
		{RuleWebDevelopment, matchAny(webKeywords), render(p, renderWeb, "skills.web_development", "projects")},
		{RuleProjects, matchAny(r.projectAny), r.respondProjects},
		{RuleExperience, matchAny(experienceKeywords), render(p, renderExperience, "experience")},
		{RuleIBM, matchAny(ibmKeywords), render(p, renderIBM, "experience", "certificates")},
		{RuleAmbassador, matchAny(ambassadorKeywords), render(p, renderAmbassador, "experience")},
		{RuleSIH, matchAny(sihKeywords), render(p, renderSIH, "experience")},
		{RuleCollege, matchAny(collegeKeywords), render(p, renderCollege, "education")},
		{RulePython, func(q *query) bool {
			return q.has(pythonKeywords) && !strings.Contains(q.padded, "programming")
		}, render(p, renderPython, "skills.programming", "projects")},
		{RuleInterests, matchAny(interestKeywords), render(p, renderInterests, "interests")},
		{RulePatent, matchAny(patentKeywords), render(p, renderPatent, "projects")},
		{RuleHackathon, matchAny(hackathonKeywords), render(p, renderHackathon, "achievements")},
		{RuleAchievements, matchAny(achievementKeywords), render(p, renderAchievements, "achievements", "certificates")},
		{RuleHiring, matchAny(hiringKeywords), render(p, renderHiring, "contact")},
		{RuleAbout, matchAny(r.aboutAny), render(p, renderAbout, "about")},

		{RuleGreeting, func(q *query) bool { return r.greetings[q.words] }, render(p, renderGreeting)},
		{RuleDefault, func(*query) bool { return true }, fixed(Fallback)},
	}
}

func (r *Responder) isTooShort(q *query) bool {
	if r.shortAllow[q.words] {
		return false
	}
	if len(q.lower) < 3 {
		return true
	}
	return !strings.ContainsAny(q.lower, " \t\n\r") && len(q.lower) < 15
}

func (r *Responder) isOffTopic(q *query) bool {
	return len(q.lower) > 10 && !q.has(r.allowList) && !q.has(r.nameTokens)
}

func (r *Responder) respondProjects(q *query) (Result, error) {
	for _, pk := range r.projectKeys {
		if !q.has(pk.keys) {
			continue
		}
		text, err := renderProject(pk.project)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: text, Rule: RuleProject, Project: pk.project.Name, Sources: []string{"projects"}}, nil
	}
	text, err := renderProjectList(r.profile)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text, Sources: []string{"projects"}}, nil
}

func matchAny(tables ...[]string) func(q *query) bool {
	return func(q *query) bool {
		for _, t := range tables {
			if q.has(t) {
				return true
			}
		}
		return false
	}
}

func fixed(text string) func(*query) (Result, error) {
	return func(*query) (Result, error) {
		return Result{Text: text}, nil
	}
}

func render(p *profile.Profile, fn func(*profile.Profile) (string, error), sources ...string) func(*query) (Result, error) {
	return func(*query) (Result, error) {
		text, err := fn(p)
		if err != nil {
			return Result{}, err
		}
		var src []string
		if len(sources) > 0 {
			src = append(src, sources...)
		}
		return Result{Text: text, Sources: src}, nil
	}
}
