// Package keywords derives topic tags from free-text vacancy content.
//
// Extraction is a pure function: the same text always yields the same tags in
// the same order. Tags are drawn from a fixed vocabulary scanned in order,
// followed by a handful of synonym-driven composite rules.
package keywords

import "strings"

// Vocabulary is the canonical tag list, scanned in order. It doubles as the
// interest picker offered to jobseekers.
var Vocabulary = []string{
	"JavaScript",
	"React",
	"Vue",
	"Angular",
	"Node.js",
	"Python",
	"Java",
	"C++",
	"C#",
	"PHP",
	"HTML",
	"CSS",
	"TypeScript",
	"Docker",
	"Kubernetes",
	"AWS",
	"Azure",
	"GCP",
	"MongoDB",
	"PostgreSQL",
	"MySQL",
	"Redis",
	"GraphQL",
	"REST API",
	"Microservices",
	"DevOps",
	"CI/CD",
	"Git",
	"Linux",
	"Windows",
	"iOS",
	"Android",
	"Flutter",
	"React Native",
	"Swift",
	"Kotlin",
	"Machine Learning",
	"AI",
	"Data Science",
	"Analytics",
	"Business Intelligence",
	"Project Management",
	"Agile",
	"Scrum",
	"UX/UI",
	"Design",
	"Marketing",
	"Sales",
	"Customer Support",
	"HR",
	"Finance",
	"Legal",
	"Education",
	"Healthcare",
	"E-commerce",
	"Fintech",
	"Edtech",
	"Medtech",
	"Startup",
	"Enterprise",
	"Remote",
	"Freelance",
	"Full-time",
	"Part-time",
	"Internship",
	"Frontend",
	"Backend",
	"Full Stack",
	"Web Development",
	"Mobile Development",
	"UI Design",
	"UX Design",
	"User Interface",
	"User Experience",
	"Visual Design",
	"Graphic Design",
	"Product Design",
	"Interaction Design",
	"Prototyping",
	"Wireframing",
	"User Research",
	"Usability Testing",
	"Design Systems",
	"Brand Design",
	"Illustration",
	"Animation",
	"3D Design",
	"Print Design",
	"Digital Design",
	"Creative Design",
	"Software Development",
	"Application Development",
	"System Development",
	"Database Design",
	"API Development",
	"Cloud Computing",
	"Server Administration",
	"Network Administration",
	"Security",
	"Testing",
	"QA",
	"Quality Assurance",
	"Automation",
	"Performance",
	"Scalability",
	"Architecture",
	"Infrastructure",
}

var designSynonyms = []string{"design", "designer", "designing"}

// roleRule adds a composite tag when any of its synonym phrases appears in
// the text, even if the tag itself never does.
type roleRule struct {
	tag      string
	synonyms []string
}

// Rules run in this order so the output stays deterministic.
var roleRules = []roleRule{
	{"Frontend", []string{"frontend", "front-end", "client-side", "browser"}},
	{"Backend", []string{"backend", "back-end", "server-side", "api"}},
	{"Full Stack", []string{"full stack", "fullstack", "full-stack"}},
	{"UI/UX", []string{"ui/ux", "ui ux", "user interface", "user experience", "ux/ui"}},
	{"Data Science", []string{"data science", "data scientist", "analytics", "machine learning", "ml", "ai"}},
}

// Tags whose presence implies the vacancy is a frontend or backend role.
var (
	frontendSignals = []string{"React", "Vue", "Angular", "JavaScript", "TypeScript"}
	backendSignals  = []string{"Node.js", "Python", "Java", "C#", "PHP"}
)

// Extract returns the ordered tag set for a vacancy's free-text fields.
// Order is vocabulary scan order, then composite additions; duplicates are
// suppressed.
func Extract(title, description, requirements, responsibilities string) []string {
	text := strings.ToLower(title + " " + description + " " + requirements + " " + responsibilities)

	extracted := make([]string, 0, 16)
	seen := make(map[string]bool)
	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			extracted = append(extracted, tag)
		}
	}

	for _, tag := range Vocabulary {
		if strings.Contains(text, strings.ToLower(tag)) {
			add(tag)
		}
	}

	for _, word := range designSynonyms {
		if strings.Contains(text, word) {
			add("Design")
			break
		}
	}

	for _, rule := range roleRules {
		for _, synonym := range rule.synonyms {
			if strings.Contains(text, synonym) {
				add(rule.tag)
				break
			}
		}
	}

	if containsAny(seen, frontendSignals) {
		add("Frontend")
	}
	if containsAny(seen, backendSignals) {
		add("Backend")
	}

	return extracted
}

func containsAny(seen map[string]bool, tags []string) bool {
	for _, tag := range tags {
		if seen[tag] {
			return true
		}
	}
	return false
}
