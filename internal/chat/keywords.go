package chat

// Keyword tables are matched as substrings of the normalized input, which is
// lower-cased and padded with one space on each side. A leading or trailing
// space in a keyword therefore anchors it to a word boundary.

// shortGreetings may pass the too-short gate. The owner's first name is added
// at construction.
var shortGreetings = []string{"hi", "hello", "hey"}

// greetingWords answer with the greeting menu when they are the whole input.
// Single words other than shortGreetings stop at the too-short gate, so only
// those and multi-word phrases belong here.
var greetingWords = []string{
	"hi", "hello", "hey",
	"hi there", "hello there", "hey there",
	"good morning", "good afternoon", "good evening",
}

var personalKeywords = []string{
	"girlfriend", "boyfriend", "relationship", "married", "marriage", "wife",
	"husband", "dating", "crush",
	"family", "father", "mother", "parents", "brother", "sister",
	"salary", "income", "net worth", "money", "bank account",
	"religion", "caste", "politic", "vote",
	"phone number", "mobile number", "whatsapp", "home address", "where do you live",
	"age", "birthday", "date of birth", "how old",
}

var contactKeywords = []string{
	"contact", "email", "e-mail", "reach you", "reach out", "get in touch",
	"linkedin", "github", "connect with you",
}

var educationKeywords = []string{
	"education", "degree", "qualification", "b.tech", "btech", "cgpa", " gpa",
	"studying", "study", "academic", "university", "graduat",
}

var skillsKeywords = []string{
	"skill", "technolog", "tech stack", "programming", "expertise", "proficien",
	"good at", "tools do you",
}

// mlAdvancedKeywords pick the framework-level answer; mlBasicKeywords the
// general one. Both route to the machine learning rule.
var mlAdvancedKeywords = []string{
	"tensorflow", "pytorch", "keras", "deep learning", "neural", "transformer",
	" llm", "computer vision", "opencv", " nlp", "generative",
}

var mlBasicKeywords = []string{
	"machine learning", " ml ", " ai ", "artificial intelligence", "scikit",
	"sklearn", "regression", "classification",
}

var dataScienceKeywords = []string{
	"data science", "data scien", "data analy", "analytics", "pandas", "numpy",
	"visuali", "statistic", "power bi", "matplotlib",
}

var webKeywords = []string{
	"web dev", "web app", "website", "frontend", "front-end", "front end",
	"backend", "back-end", "full stack", "full-stack", "react", " node",
	"javascript", "html", "css", "flask",
}

// projectKeywords is extended at construction with every project name and alias.
var projectKeywords = []string{
	"project", "portfolio", "built", "what have you made", "worked on",
	"created", "developed",
}

var experienceKeywords = []string{
	"experience", "internship", " intern ", "work history", "career",
	"worked at", " job", "professional",
}

var ibmKeywords = []string{" ibm"}

var ambassadorKeywords = []string{"innovation ambassador", "ambassador", "innovation council"}

var sihKeywords = []string{" sih ", "smart india"}

var collegeKeywords = []string{"college", "campus", "institute"}

var pythonKeywords = []string{"python"}

var interestKeywords = []string{
	"interest", "hobb", "passion", "free time", "spare time", "for fun",
	"outside of work", "outside work",
}

var patentKeywords = []string{"patent", "helmet", "invention", "intellectual property"}

var hackathonKeywords = []string{"hackathon", "competition", "hacknova"}

var achievementKeywords = []string{
	"certificat", "certified", "achievement", "award", "accomplish",
	"recognition", "honor", " won ",
}

var hiringKeywords = []string{
	"hire", "hiring", "recruit", "opportunit", "open to work", "available for",
	"resume", " cv ", "freelance", "collaborat",
}

// aboutKeywords is extended at construction with the owner's name tokens.
var aboutKeywords = []string{
	"about you", "about yourself", "who are you", "who is", "introduce",
	"tell me about", "background",
}
