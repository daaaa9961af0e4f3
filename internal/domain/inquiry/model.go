package inquiry

import (
	"fmt"
	"strings"
	"time"
)

const MaxMessageLength = 5000

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

func (m ContactMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(m.Email) == "" {
		return fmt.Errorf("email is required")
	}
	message := strings.TrimSpace(m.Message)
	if message == "" {
		return fmt.Errorf("message is required")
	}
	if len(message) > MaxMessageLength {
		return fmt.Errorf("message must be at most %d characters", MaxMessageLength)
	}
	return nil
}

// Job is an open position listed on the careers page.
type Job struct {
	Slug           string
	Title          string
	Department     string
	Location       string
	EmploymentType string
}

var openings = []Job{
	{Slug: "esports-caster", Title: "eSports Caster", Department: "Broadcast", Location: "Remote", EmploymentType: "Freelance"},
	{Slug: "graphic-designer", Title: "Graphic Designer", Department: "Creative", Location: "Remote", EmploymentType: "Full-time"},
}

// Openings returns a copy of the job catalog.
func Openings() []Job {
	return append([]Job(nil), openings...)
}

// FindOpening looks a job up by slug.
func FindOpening(slug string) (Job, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, job := range openings {
		if job.Slug == slug {
			return job, true
		}
	}
	return Job{}, false
}

// Application is a candidate's application for one opening.
type Application struct {
	ID           int64
	JobSlug      string
	Name         string
	Email        string
	PortfolioURL string
	CoverLetter  string
	CreatedAt    time.Time
}

func (a Application) Validate() error {
	if _, ok := FindOpening(a.JobSlug); !ok {
		return fmt.Errorf("unknown job opening: %s", a.JobSlug)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(a.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if len(a.CoverLetter) > MaxMessageLength {
		return fmt.Errorf("cover letter must be at most %d characters", MaxMessageLength)
	}
	return nil
}
