package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Zachkp/portfolio/internal/profile"
)

// Fixed replies for the gate rules. They do not depend on the profile.
const (
	LanguageNotice = "I can only respond in English for now. 🌐 Please rephrase your question in English, " +
		"or reach out directly through the contact form on this page."

	TooBrief = "That's a bit too brief for me to understand. 🤔 Could you ask a complete question? " +
		"For example: \"What projects have you built?\""

	Clarify = "Could you tell me a little more about what you'd like to know? 😊 You can ask about:\n" +
		"• **Skills** and technologies\n" +
		"• **Projects** I've built\n" +
		"• **Experience** and internships\n" +
		"• **Education** and achievements\n" +
		"• How to **contact** me"

	PersonalRefusal = "I keep personal details private. 🙏 I'm happy to talk about my skills, projects and " +
		"experience. For anything else, please get in touch through the contact form or LinkedIn."

	OffTopic = "I only answer questions about my portfolio: skills, projects, experience, education, " +
		"achievements and how to reach me. Try asking something like \"What are your skills?\""

	Fallback = "I'm not sure I caught that. Ask me about my background, for example my skills, projects, " +
		"experience, education, certificates, or how to contact me!"
)

var errMissingData = errors.New("profile section is empty")

func renderGreeting(p *profile.Profile) (string, error) {
	return fmt.Sprintf("Hello! 👋 I'm the assistant on %s's portfolio. Here's what you can ask me about:\n"+
		"• 💻 Skills and technologies\n"+
		"• 🚀 Projects\n"+
		"• 💼 Experience\n"+
		"• 🎓 Education\n"+
		"• 🏆 Achievements and certificates\n"+
		"• 📬 Contact details", p.Name), nil
}

func renderContact(p *profile.Profile) (string, error) {
	c := p.Contact
	if c.Email == "" && c.LinkedIn == "" && c.GitHub == "" {
		return "", fmt.Errorf("contact: %w", errMissingData)
	}
	var b strings.Builder
	b.WriteString("You can reach me here: 📬\n")
	if c.Email != "" {
		fmt.Fprintf(&b, "• **Email:** %s\n", c.Email)
	}
	if c.LinkedIn != "" {
		fmt.Fprintf(&b, "• **LinkedIn:** %s\n", c.LinkedIn)
	}
	if c.GitHub != "" {
		fmt.Fprintf(&b, "• **GitHub:** %s\n", c.GitHub)
	}
	if c.Location != "" {
		fmt.Fprintf(&b, "• **Based in:** %s\n", c.Location)
	}
	b.WriteString("Or use the contact form on this page and I'll get back to you soon.")
	return b.String(), nil
}

func renderEducation(p *profile.Profile) (string, error) {
	e := p.Education
	if e.Degree == "" {
		return "", fmt.Errorf("education: %w", errMissingData)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🎓 I'm pursuing a **%s** at **%s**", e.Degree, e.Institution)
	if e.Period != "" {
		fmt.Fprintf(&b, " (%s)", e.Period)
	}
	b.WriteString(".")
	if e.Score != "" {
		fmt.Fprintf(&b, " Current score: **%s**.", e.Score)
	}
	writeBullets(&b, e.Highlights)
	return b.String(), nil
}

func renderSkills(p *profile.Profile) (string, error) {
	if len(p.Skills.Programming) == 0 {
		return "", fmt.Errorf("skills: %w", errMissingData)
	}
	var b strings.Builder
	b.WriteString("Here's a snapshot of my technical skills: 💻\n")
	for i, g := range p.Skills.Groups() {
		n := 3
		if i == 0 {
			n = 4
		}
		names := profile.SkillNames(g.Skills, n)
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n**%s:** %s", g.Label, strings.Join(names, ", "))
	}
	b.WriteString("\n\nAsk me about any of these areas for more detail!")
	return b.String(), nil
}

func renderMLBasic(p *profile.Profile) (string, error) {
	if len(p.Skills.MachineLearning) == 0 {
		return "", fmt.Errorf("machine learning: %w", errMissingData)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🤖 Machine learning is my main focus. I work with %s to build models that solve practical problems.",
		joinHuman(profile.SkillNames(p.Skills.MachineLearning, -1)))
	writeProjectNames(&b, "Projects in this area", projectsIn(p, "machine learning"))
	b.WriteString("\n\nAsk about a specific framework or project for the details!")
	return b.String(), nil
}

func renderMLAdvanced(p *profile.Profile) (string, error) {
	if len(p.Skills.MachineLearning) == 0 {
		return "", fmt.Errorf("machine learning: %w", errMissingData)
	}
	var b strings.Builder
	b.WriteString("🧠 Here's how I work with deep learning and ML frameworks:\n")
	for _, s := range p.Skills.MachineLearning {
		fmt.Fprintf(&b, "\n• **%s** (%d%%)", s.Name, s.Level)
	}
	writeProjectNames(&b, "Where I've applied them", projectsIn(p, "machine learning"))
	if e, ok := p.ExperienceAt("ibm"); ok {
		fmt.Fprintf(&b, "\n\nDuring my time as %s at %s I also shipped models to production.", e.Role, e.Organization)
	}
	return b.String(), nil
}

func renderDataScience(p *profile.Profile) (string, error) {
	if len(p.Skills.DataScience) == 0 {
		return "", fmt.Errorf("data science: %w", errMissingData)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 For data analysis and visualization I use %s.",
		joinHuman(profile.SkillNames(p.Skills.DataScience, -1)))
	writeProjectNames(&b, "Related projects", projectsIn(p, "data science"))
	return b.String(), nil
}

func renderWeb(p *profile.Profile) (string, error) {
	if len(p.Skills.WebDevelopment) == 0 {
		return "", fmt.Errorf("web development: %w", errMissingData)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🌐 On the web side I build with %s.",
		joinHuman(profile.SkillNames(p.Skills.WebDevelopment, -1)))
	writeProjectNames(&b, "Web projects", projectsIn(p, "web development"))
	return b.String(), nil
}

// projectBlockPrefix starts every block of the project list.
const projectBlockPrefix = "🔹 "

func renderProjectList(p *profile.Profile) (string, error) {
	if len(p.Projects) == 0 {
		return "", fmt.Errorf("projects: %w", errMissingData)
	}
	var b strings.Builder
	b.WriteString("Here are the projects I've worked on: 🚀")
	for _, pr := range p.Projects {
		b.WriteString("\n\n")
		b.WriteString(formatProjectBlock(pr))
	}
	b.WriteString("\n\nAsk about any project by name to learn more!")
	return b.String(), nil
}

func formatProjectBlock(pr profile.Project) string {
	var b strings.Builder
	b.WriteString(projectBlockPrefix)
	fmt.Fprintf(&b, "**%s**", pr.Name)
	if pr.Category != "" {
		fmt.Fprintf(&b, " (%s)", pr.Category)
	}
	if pr.Description != "" {
		b.WriteString("\n")
		b.WriteString(pr.Description)
	}
	if len(pr.Tech) > 0 {
		fmt.Fprintf(&b, "\n*Tech:* %s", strings.Join(pr.Tech, ", "))
	}
	return b.String()
}

func renderProject(pr profile.Project) (string, error) {
	body := pr.Detail
	if body == "" {
		body = pr.Description
	}
	if body == "" {
		return "", fmt.Errorf("project %q: %w", pr.Name, errMissingData)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", pr.Name)
	if pr.Category != "" {
		fmt.Fprintf(&b, " (%s)", pr.Category)
	}
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(body))
	if len(pr.Tech) > 0 {
		fmt.Fprintf(&b, "\n\n*Tech:* %s", strings.Join(pr.Tech, ", "))
	}
	return b.String(), nil
}

func renderExperience(p *profile.Profile) (string, error) {
	if len(p.Experience) == 0 {
		return "", fmt.Errorf("experience: %w", errMissingData)
	}
	var b strings.Builder
	b.WriteString("💼 Here's my experience so far:")
	for _, e := range p.Experience {
		b.WriteString("\n\n")
		writeExperience(&b, e)
	}
	return b.String(), nil
}

func renderIBM(p *profile.Profile) (string, error) {
	e, ok := p.ExperienceAt("ibm")
	if !ok {
		return "", fmt.Errorf("ibm: %w", errMissingData)
	}
	var b strings.Builder
	b.WriteString("🏢 ")
	writeExperience(&b, e)
	for _, c := range p.Certificates {
		if strings.EqualFold(c.Issuer, "ibm") {
			fmt.Fprintf(&b, "\n\nI also earned the **%s** (%s).", c.Name, c.Year)
			break
		}
	}
	return b.String(), nil
}

func renderAmbassador(p *profile.Profile) (string, error) {
	e, ok := p.ExperienceAs("innovation ambassador")
	if !ok {
		return "", fmt.Errorf("innovation ambassador: %w", errMissingData)
	}
	var b strings.Builder
	b.WriteString("💡 ")
	writeExperience(&b, e)
	return b.String(), nil
}

func renderSIH(p *profile.Profile) (string, error) {
	e, ok := p.ExperienceAt("smart india hackathon")
	if !ok {
		return "", fmt.Errorf("smart india hackathon: %w", errMissingData)
	}
	var b strings.Builder
	b.WriteString("🏁 ")
	writeExperience(&b, e)
	return b.String(), nil
}

func renderCollege(p *profile.Profile) (string, error) {
	e := p.Education
	if e.Institution == "" {
		return "", fmt.Errorf("college: %w", errMissingData)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🏫 I study at **%s**", e.Institution)
	if e.Degree != "" {
		fmt.Fprintf(&b, ", working towards a %s", e.Degree)
	}
	b.WriteString(".")
	writeBullets(&b, e.Highlights)
	return b.String(), nil
}

func renderPython(p *profile.Profile) (string, error) {
	var py *profile.Skill
	for i := range p.Skills.Programming {
		if strings.EqualFold(p.Skills.Programming[i].Name, "python") {
			py = &p.Skills.Programming[i]
			break
		}
	}
	if py == nil {
		return "", fmt.Errorf("python: %w", errMissingData)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🐍 Python is my strongest language (%d%%). I use it for machine learning, data analysis and backend services.", py.Level)
	var used []profile.Project
	for _, pr := range p.Projects {
		for _, t := range pr.Tech {
			if strings.EqualFold(t, "python") {
				used = append(used, pr)
				break
			}
		}
	}
	writeProjectNames(&b, "Projects built with Python", used)
	return b.String(), nil
}

func renderInterests(p *profile.Profile) (string, error) {
	if len(p.Interests) == 0 {
		return "", fmt.Errorf("interests: %w", errMissingData)
	}
	var b strings.Builder
	b.WriteString("✨ Outside of coursework and code, I'm into:")
	writeBullets(&b, p.Interests)
	return b.String(), nil
}

func renderPatent(p *profile.Profile) (string, error) {
	for _, pr := range p.Projects {
		if strings.Contains(strings.ToLower(pr.Detail), "patent") {
			text, err := renderProject(pr)
			if err != nil {
				return "", err
			}
			return "📜 My patent work comes from this project:\n\n" + text, nil
		}
	}
	return "", fmt.Errorf("patent: %w", errMissingData)
}

func renderHackathon(p *profile.Profile) (string, error) {
	var wins []string
	for _, a := range p.Achievements {
		if strings.Contains(strings.ToLower(a), "hack") {
			wins = append(wins, a)
		}
	}
	if len(wins) == 0 {
		return "", fmt.Errorf("hackathons: %w", errMissingData)
	}
	var b strings.Builder
	b.WriteString("🏆 I love hackathons. Highlights so far:")
	writeBullets(&b, wins)
	return b.String(), nil
}

func renderAchievements(p *profile.Profile) (string, error) {
	if len(p.Certificates) == 0 && len(p.Achievements) == 0 {
		return "", fmt.Errorf("achievements: %w", errMissingData)
	}
	var b strings.Builder
	if len(p.Achievements) > 0 {
		b.WriteString("🏆 **Achievements**")
		writeBullets(&b, p.Achievements)
	}
	if len(p.Certificates) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("📜 **Certificates**")
		for _, c := range p.Certificates {
			fmt.Fprintf(&b, "\n• %s, %s", c.Name, c.Issuer)
			if c.Year != "" {
				fmt.Fprintf(&b, " (%s)", c.Year)
			}
		}
	}
	return b.String(), nil
}

func renderHiring(p *profile.Profile) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "🤝 Yes, I'm open to internships, full-time roles and collaborations as an **%s**.", p.Title)
	if p.Contact.Email != "" {
		fmt.Fprintf(&b, "\n\nThe quickest way to reach me is **%s**", p.Contact.Email)
		if p.Contact.LinkedIn != "" {
			fmt.Fprintf(&b, " or LinkedIn (%s)", p.Contact.LinkedIn)
		}
		b.WriteString(". I'm happy to share my resume on request.")
	}
	return b.String(), nil
}

func renderAbout(p *profile.Profile) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "👋 I'm **%s**", p.Name)
	if p.Title != "" {
		fmt.Fprintf(&b, ", %s", p.Title)
	}
	b.WriteString(".")
	if p.About != "" {
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(p.About))
	}
	if p.Tagline != "" {
		b.WriteString("\n\n*")
		b.WriteString(p.Tagline)
		b.WriteString("*")
	}
	return b.String(), nil
}

func writeExperience(b *strings.Builder, e profile.Experience) {
	fmt.Fprintf(b, "**%s** at %s", e.Role, e.Organization)
	if e.Period != "" {
		fmt.Fprintf(b, " (%s)", e.Period)
	}
	if e.Description != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(e.Description))
	}
}

func writeBullets(b *strings.Builder, items []string) {
	for _, it := range items {
		b.WriteString("\n• ")
		b.WriteString(it)
	}
}

func writeProjectNames(b *strings.Builder, heading string, projects []profile.Project) {
	if len(projects) == 0 {
		return
	}
	fmt.Fprintf(b, "\n\n**%s:**", heading)
	for _, pr := range projects {
		fmt.Fprintf(b, "\n• %s: %s", pr.Name, pr.Description)
	}
}

func projectsIn(p *profile.Profile, category string) []profile.Project {
	var out []profile.Project
	for _, pr := range p.Projects {
		if strings.EqualFold(pr.Category, category) {
			out = append(out, pr)
		}
	}
	return out
}

// joinHuman joins items as "a, b and c".
func joinHuman(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
