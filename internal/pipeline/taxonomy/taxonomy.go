// Package taxonomy holds the static skill dictionary used by the matcher,
// scorer, and gap analyzer. The taxonomy is built once at startup and never
// mutated, so a single instance is safe for unlimited concurrent readers.
package taxonomy

import (
	"regexp"
	"strings"
)

// SoftSkills is the category whose entries are treated as interpersonal
// skills rather than technical requirements.
const SoftSkills = "soft_skills"

// Category is one named group of skill phrases.
type Category struct {
	Name   string
	Skills []string
}

// Taxonomy is the immutable, versioned skill dictionary. Phrase matching is
// case-insensitive and delimited by word boundaries or common punctuation.
type Taxonomy struct {
	Version    string
	categories []Category
	patterns   map[string]*regexp.Regexp // canonical skill -> compiled matcher
	softSet    map[string]bool           // lowercase soft skills
	sizes      map[string]int            // category -> phrase count
}

// Default builds the standard taxonomy.
func Default() *Taxonomy {
	return build("2024.1", defaultCategories)
}

func build(version string, categories []Category) *Taxonomy {
	t := &Taxonomy{
		Version:    version,
		categories: categories,
		patterns:   make(map[string]*regexp.Regexp),
		softSet:    make(map[string]bool),
		sizes:      make(map[string]int, len(categories)),
	}
	for _, cat := range categories {
		t.sizes[cat.Name] = len(cat.Skills)
		for _, skill := range cat.Skills {
			if _, ok := t.patterns[skill]; !ok {
				t.patterns[skill] = phrasePattern(skill)
			}
			if cat.Name == SoftSkills {
				t.softSet[strings.ToLower(skill)] = true
			}
		}
	}
	return t
}

// phrasePattern compiles a matcher that accepts the phrase only when it is
// delimited by start/end of text, whitespace, or common punctuation. This
// keeps "java" from matching inside "javascript".
func phrasePattern(skill string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(strings.ToLower(skill))
	return regexp.MustCompile(`(?:^|[\s,;:()\[\]./])` + escaped + `(?:[\s,;:()\[\]./]|$)`)
}

// Categories returns the category list in declaration order.
func (t *Taxonomy) Categories() []Category {
	return t.categories
}

// CategorySize returns the number of phrases in a category, 0 if unknown.
func (t *Taxonomy) CategorySize(name string) int {
	return t.sizes[name]
}

// Matches reports whether text contains the skill phrase with acceptable
// boundaries. Text must already be lower-cased by the caller.
func (t *Taxonomy) Matches(lowerText, skill string) bool {
	pat, ok := t.patterns[skill]
	if !ok {
		return false
	}
	return pat.MatchString(lowerText)
}

// FindIndex returns the byte offset of the first occurrence of the skill in
// lowerText, or -1.
func (t *Taxonomy) FindIndex(lowerText, skill string) int {
	pat, ok := t.patterns[skill]
	if !ok {
		return -1
	}
	loc := pat.FindStringIndex(lowerText)
	if loc == nil {
		return -1
	}
	return loc[0]
}

// IsSoftSkill reports whether a skill belongs to the soft-skill category.
func (t *Taxonomy) IsSoftSkill(skill string) bool {
	return t.softSet[strings.ToLower(skill)]
}

// AllSkills returns every phrase with its category, in declaration order.
func (t *Taxonomy) AllSkills() []CategorySkill {
	var out []CategorySkill
	for _, cat := range t.categories {
		for _, s := range cat.Skills {
			out = append(out, CategorySkill{Category: cat.Name, Skill: s})
		}
	}
	return out
}

// CategorySkill pairs a skill phrase with its owning category.
type CategorySkill struct {
	Category string
	Skill    string
}

var defaultCategories = []Category{
	{
		Name: "programming",
		Skills: []string{
			"Python", "JavaScript", "TypeScript", "Java", "C++", "C#",
			"Go", "Rust", "Ruby", "PHP", "Swift", "Kotlin", "Scala",
			"R", "MATLAB", "Perl", "Haskell", "Lua", "Dart", "Objective-C",
			"Shell", "Bash", "PowerShell", "SQL", "NoSQL",
		},
	},
	{
		Name: "frameworks",
		Skills: []string{
			"React", "React.js", "Angular", "Vue.js", "Vue", "Next.js",
			"Node.js", "Express", "Express.js", "Django", "Flask",
			"FastAPI", "Spring Boot", "Spring", "ASP.NET", ".NET Core",
			"Ruby on Rails", "Rails", "Laravel", "Symfony", "jQuery",
			"Bootstrap", "Tailwind CSS", "Svelte", "Nuxt.js", "Gatsby",
			"Redux", "MobX", "Vuex", "GraphQL", "REST API", "RESTful",
		},
	},
	{
		Name: "databases",
		Skills: []string{
			"MongoDB", "PostgreSQL", "MySQL", "SQLite", "Oracle",
			"SQL Server", "Redis", "Elasticsearch", "Cassandra",
			"DynamoDB", "Firebase", "Neo4j", "MariaDB", "CouchDB",
			"InfluxDB", "TimescaleDB", "Supabase", "PlanetScale",
		},
	},
	{
		Name: "cloud_devops",
		Skills: []string{
			"AWS", "Amazon Web Services", "Azure", "Google Cloud", "GCP",
			"Docker", "Kubernetes", "K8s", "Terraform", "Ansible",
			"Jenkins", "CircleCI", "GitHub Actions", "GitLab CI",
			"Travis CI", "Heroku", "Vercel", "Netlify", "DigitalOcean",
			"CloudFormation", "Pulumi", "Helm", "ArgoCD", "Istio",
			"Prometheus", "Grafana", "ELK Stack", "Datadog", "New Relic",
			"CI/CD", "DevOps", "SRE", "Infrastructure as Code", "IaC",
		},
	},
	{
		Name: "data_science",
		Skills: []string{
			"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch",
			"Keras", "Scikit-learn", "Pandas", "NumPy", "Matplotlib",
			"Seaborn", "Jupyter", "Apache Spark", "Hadoop", "NLP",
			"Natural Language Processing", "Computer Vision", "OpenCV",
			"Neural Networks", "Data Mining", "Data Analysis",
			"Statistics", "A/B Testing", "Feature Engineering",
			"MLOps", "Model Deployment", "Hugging Face", "LLM",
			"GPT", "BERT", "Transformers", "RAG",
		},
	},
	{
		Name: "tools",
		Skills: []string{
			"Git", "GitHub", "GitLab", "Bitbucket", "JIRA", "Confluence",
			"Trello", "Asana", "Slack", "VS Code", "IntelliJ", "PyCharm",
			"Postman", "Insomnia", "Figma", "Sketch", "Adobe XD",
			"Linux", "Unix", "macOS", "Windows Server",
			"Nginx", "Apache", "Load Balancing", "CDN",
		},
	},
	{
		Name: "security",
		Skills: []string{
			"OAuth", "JWT", "Authentication", "Authorization",
			"OWASP", "Penetration Testing", "Security Audit",
			"Encryption", "SSL/TLS", "HTTPS", "Firewall",
			"IAM", "SSO", "SAML", "LDAP",
		},
	},
	{
		Name: "testing",
		Skills: []string{
			"Unit Testing", "Integration Testing", "E2E Testing",
			"Jest", "Mocha", "Chai", "Pytest", "JUnit", "Selenium",
			"Cypress", "Playwright", "TestNG", "TDD", "BDD",
			"Test Automation", "QA", "Quality Assurance",
		},
	},
	{
		Name: "methodologies",
		Skills: []string{
			"Agile", "Scrum", "Kanban", "Waterfall", "Lean",
			"SAFe", "XP", "Extreme Programming", "Sprint Planning",
			"Code Review", "Pair Programming", "Mob Programming",
		},
	},
	{
		Name: SoftSkills,
		Skills: []string{
			"Leadership", "Communication", "Problem Solving",
			"Team Collaboration", "Teamwork", "Time Management",
			"Critical Thinking", "Adaptability", "Creativity",
			"Project Management", "Mentoring", "Coaching",
			"Presentation", "Public Speaking", "Negotiation",
			"Conflict Resolution", "Decision Making", "Strategic Thinking",
			"Emotional Intelligence", "Customer Focus", "Innovation",
		},
	},
}
