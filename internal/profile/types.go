package profile

// Profile is the static biography the site and the chat responder read from.
// It is loaded once and must not be mutated afterwards.
type Profile struct {
	Name         string        `yaml:"name" json:"name"`
	Title        string        `yaml:"title" json:"title"`
	Tagline      string        `yaml:"tagline" json:"tagline"`
	About        string        `yaml:"about" json:"about"`
	Contact      Contact       `yaml:"contact" json:"contact"`
	Education    Education     `yaml:"education" json:"education"`
	Skills       Skills        `yaml:"skills" json:"skills"`
	Projects     []Project     `yaml:"projects" json:"projects"`
	Experience   []Experience  `yaml:"experience" json:"experience"`
	Achievements []string      `yaml:"achievements" json:"achievements"`
	Certificates []Certificate `yaml:"certificates" json:"certificates"`
	Interests    []string      `yaml:"interests" json:"interests"`
}

// Contact lists the public channels. Private details never go here.
type Contact struct {
	Email    string `yaml:"email" json:"email"`
	LinkedIn string `yaml:"linkedin" json:"linkedin"`
	GitHub   string `yaml:"github" json:"github"`
	Location string `yaml:"location" json:"location"`
}

type Education struct {
	Degree      string   `yaml:"degree" json:"degree"`
	Institution string   `yaml:"institution" json:"institution"`
	Period      string   `yaml:"period" json:"period"`
	Score       string   `yaml:"score" json:"score"`
	Highlights  []string `yaml:"highlights" json:"highlights"`
}

// Skill is a named skill with a proficiency between 0 and 100.
type Skill struct {
	Name  string `yaml:"name" json:"name"`
	Level int    `yaml:"level" json:"level"`
}

// Skills groups skills the way the site renders them.
type Skills struct {
	Programming     []Skill `yaml:"programming" json:"programming"`
	MachineLearning []Skill `yaml:"machine_learning" json:"machine_learning"`
	DataScience     []Skill `yaml:"data_science" json:"data_science"`
	WebDevelopment  []Skill `yaml:"web_development" json:"web_development"`
	Tools           []Skill `yaml:"tools" json:"tools"`
}

// Groups returns every group in display order, keyed by its label.
func (s Skills) Groups() []SkillGroup {
	return []SkillGroup{
		{Label: "Programming", Skills: s.Programming},
		{Label: "Machine Learning & AI", Skills: s.MachineLearning},
		{Label: "Data Science", Skills: s.DataScience},
		{Label: "Web Development", Skills: s.WebDevelopment},
		{Label: "Tools & Platforms", Skills: s.Tools},
	}
}

type SkillGroup struct {
	Label  string
	Skills []Skill
}

// Project is one portfolio entry. Aliases are extra lower-case phrases that
// identify the project in free text, in addition to its name.
type Project struct {
	Name        string   `yaml:"name" json:"name"`
	Aliases     []string `yaml:"aliases" json:"aliases,omitempty"`
	Category    string   `yaml:"category" json:"category"`
	Description string   `yaml:"description" json:"description"`
	Tech        []string `yaml:"tech" json:"tech"`
	Detail      string   `yaml:"detail" json:"detail"`
}

type Experience struct {
	Role         string `yaml:"role" json:"role"`
	Organization string `yaml:"organization" json:"organization"`
	Period       string `yaml:"period" json:"period"`
	Description  string `yaml:"description" json:"description"`
}

type Certificate struct {
	Name   string `yaml:"name" json:"name"`
	Issuer string `yaml:"issuer" json:"issuer"`
	Year   string `yaml:"year" json:"year"`
}
