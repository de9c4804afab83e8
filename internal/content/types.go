// Package content holds the immutable content collections that back the
// marketing site: services, case studies, blog posts, testimonials, the
// team roster, and the company profile. Collections are loaded once from a
// Source at startup and never mutated afterwards; every consumer reads one
// coherent Store snapshot.
package content

// Feature is a named capability listed under a service.
type Feature struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Pricing describes the commercial terms displayed for a service. The
// starting price is a display value, not an invoice amount.
type Pricing struct {
	StartingAt string `json:"startingAt" yaml:"startingAt"`
	Currency   string `json:"currency" yaml:"currency"`
	Billing    string `json:"billing" yaml:"billing"`
}

// ServiceStats carries the display counters shown on a service page.
// Values like "25+" are pre-formatted strings and are never parsed.
type ServiceStats struct {
	Projects     string `json:"projects" yaml:"projects"`
	Clients      string `json:"clients" yaml:"clients"`
	Satisfaction string `json:"satisfaction" yaml:"satisfaction"`
}

// Service is a consultancy offering. Slug is the external lookup key and
// must be unique within the collection; ID is the internal key.
type Service struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Slug         string       `json:"slug" yaml:"slug"`
	Description  string       `json:"description" yaml:"description"`
	Features     []Feature    `json:"features" yaml:"features"`
	Technologies []string     `json:"technologies" yaml:"technologies"`
	Pricing      Pricing      `json:"pricing" yaml:"pricing"`
	Timeline     string       `json:"timeline" yaml:"timeline"`
	Stats        ServiceStats `json:"stats" yaml:"stats"`
}

// Result is a quantified outcome reported in a case study.
type Result struct {
	Metric      string `json:"metric" yaml:"metric"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// Quote is the single testimonial embedded in a case study.
type Quote struct {
	Content string `json:"content" yaml:"content"`
	Author  string `json:"author" yaml:"author"`
	Role    string `json:"role" yaml:"role"`
}

// CaseStudy is a client engagement write-up. The Service field is expected
// to match a Service slug for cross-linking, but a dangling reference is
// tolerated and simply yields no match on cross-lookup.
type CaseStudy struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Slug         string   `json:"slug" yaml:"slug"`
	Client       string   `json:"client" yaml:"client"`
	Industry     string   `json:"industry" yaml:"industry"`
	Service      string   `json:"service" yaml:"service"`
	Image        string   `json:"image" yaml:"image"`
	Summary      string   `json:"summary" yaml:"summary"`
	Challenge    string   `json:"challenge" yaml:"challenge"`
	Solution     string   `json:"solution" yaml:"solution"`
	Results      []Result `json:"results" yaml:"results"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Timeline     string   `json:"timeline" yaml:"timeline"`
	TeamSize     string   `json:"teamSize" yaml:"teamSize"`
	Testimonial  Quote    `json:"testimonial" yaml:"testimonial"`
}

// Author describes the writer of a blog post.
type Author struct {
	Name   string `json:"name" yaml:"name"`
	Role   string `json:"role" yaml:"role"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// BlogPost is a published article. PublishedAt and UpdatedAt are sortable
// date strings (YYYY-MM-DD); the collection is served newest first.
type BlogPost struct {
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Slug           string   `json:"slug" yaml:"slug"`
	Excerpt        string   `json:"excerpt" yaml:"excerpt"`
	Content        string   `json:"content" yaml:"content"`
	Author         Author   `json:"author" yaml:"author"`
	Category       string   `json:"category" yaml:"category"`
	Tags           []string `json:"tags" yaml:"tags"`
	PublishedAt    string   `json:"publishedAt" yaml:"publishedAt"`
	UpdatedAt      string   `json:"updatedAt" yaml:"updatedAt"`
	ReadTime       string   `json:"readTime" yaml:"readTime"`
	Featured       bool     `json:"featured" yaml:"featured"`
	Image          string   `json:"image" yaml:"image"`
	SEOTitle       string   `json:"seoTitle" yaml:"seoTitle"`
	SEODescription string   `json:"seoDescription" yaml:"seoDescription"`
}

// ClientRef identifies the person behind a testimonial.
type ClientRef struct {
	Name    string `json:"name" yaml:"name"`
	Company string `json:"company" yaml:"company"`
	Role    string `json:"role" yaml:"role"`
	Avatar  string `json:"avatar" yaml:"avatar"`
}

// Testimonial is client feedback with a 1-5 rating. A testimonial is
// "featured" when its rating is exactly 5.
type Testimonial struct {
	ID      string    `json:"id" yaml:"id"`
	Client  ClientRef `json:"client" yaml:"client"`
	Content string    `json:"content" yaml:"content"`
	Rating  int       `json:"rating" yaml:"rating"`
	Service string    `json:"service" yaml:"service"`
	Project string    `json:"project" yaml:"project"`
	Date    string    `json:"date" yaml:"date"`
}

// SocialLinks holds optional per-platform profile URLs. Each field is
// independently optional.
type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty"`
	Dribbble string `json:"dribbble,omitempty" yaml:"dribbble,omitempty"`
}

// TeamMember is a staff bio.
type TeamMember struct {
	ID        string      `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	Role      string      `json:"role" yaml:"role"`
	Avatar    string      `json:"avatar" yaml:"avatar"`
	Bio       string      `json:"bio" yaml:"bio"`
	Expertise []string    `json:"expertise" yaml:"expertise"`
	Social    SocialLinks `json:"social" yaml:"social"`
}

// CompanyStats carries the pre-formatted headline numbers shown across the
// site ("150+", "98%"). They are presentation values, never computed on.
type CompanyStats struct {
	ProjectsCompleted string `json:"projectsCompleted" yaml:"projectsCompleted"`
	HappyClients      string `json:"happyClients" yaml:"happyClients"`
	YearsExperience   string `json:"yearsExperience" yaml:"yearsExperience"`
	Satisfaction      string `json:"satisfaction" yaml:"satisfaction"`
	SuccessRate       string `json:"successRate" yaml:"successRate"`
	TeamSize          string `json:"teamSize" yaml:"teamSize"`
	AverageRating     string `json:"averageRating" yaml:"averageRating"`
}

// Mission is the company mission statement with supporting points.
type Mission struct {
	Title   string   `json:"title" yaml:"title"`
	Content string   `json:"content" yaml:"content"`
	Points  []string `json:"points" yaml:"points"`
}

// Vision is the company vision statement with the benefits it promises.
type Vision struct {
	Title    string   `json:"title" yaml:"title"`
	Content  string   `json:"content" yaml:"content"`
	Benefits []string `json:"benefits" yaml:"benefits"`
}

// Value is one of the company's core values. Icon is a closed-set icon
// name resolved by the presentation layer.
type Value struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
}

// ProcessStep is one stage of the delivery process.
type ProcessStep struct {
	Step        string `json:"step" yaml:"step"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Company is the singleton company profile record.
type Company struct {
	Name         string        `json:"name" yaml:"name"`
	Tagline      string        `json:"tagline" yaml:"tagline"`
	Description  string        `json:"description" yaml:"description"`
	Founded      string        `json:"founded" yaml:"founded"`
	Email        string        `json:"email" yaml:"email"`
	SupportEmail string        `json:"supportEmail" yaml:"supportEmail"`
	Social       SocialLinks   `json:"social" yaml:"social"`
	Stats        CompanyStats  `json:"stats" yaml:"stats"`
	Mission      Mission       `json:"mission" yaml:"mission"`
	Vision       Vision        `json:"vision" yaml:"vision"`
	Values       []Value       `json:"values" yaml:"values"`
	Process      []ProcessStep `json:"process" yaml:"process"`
	Features     []string      `json:"features" yaml:"features"`
}
