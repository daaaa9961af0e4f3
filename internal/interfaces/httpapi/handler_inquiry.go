package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/inquiry"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

type applicationRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	PortfolioURL string `json:"portfolioUrl" validate:"omitempty,url"`
	CoverLetter  string `json:"coverLetter" validate:"max=5000"`
}

type contactMessageDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

type jobDTO struct {
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Department     string `json:"department"`
	Location       string `json:"location"`
	EmploymentType string `json:"employmentType"`
}

type applicationDTO struct {
	ID           int64  `json:"id"`
	JobSlug      string `json:"jobSlug"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PortfolioURL string `json:"portfolioUrl"`
	CoverLetter  string `json:"coverLetter"`
	CreatedAt    string `json:"createdAt"`
}

func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitContact")
	defer span.End()

	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.inquiryService.SubmitContact(ctx, usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit contact message failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, contactToDTO(item))
}

func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContactMessages")
	defer span.End()

	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	messages, err := h.inquiryService.ListContactMessages(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list contact messages failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]contactMessageDTO, 0, len(messages))
	for _, m := range messages {
		items = append(items, contactToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListOpenings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOpenings")
	defer span.End()

	jobs := h.inquiryService.ListOpenings(ctx)
	items := make([]jobDTO, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, jobDTO{
			Slug:           j.Slug,
			Title:          j.Title,
			Department:     j.Department,
			Location:       j.Location,
			EmploymentType: j.EmploymentType,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Apply")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("slug"))
	var req applicationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.inquiryService.Apply(ctx, usecase.ApplicationInput{
		JobSlug:      slug,
		Name:         req.Name,
		Email:        req.Email,
		PortfolioURL: req.PortfolioURL,
		CoverLetter:  req.CoverLetter,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit job application failed", "job_slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, applicationToDTO(item))
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListApplications")
	defer span.End()

	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	jobSlug := r.URL.Query().Get("job")

	applications, err := h.inquiryService.ListApplications(ctx, jobSlug, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list job applications failed", "job_slug", jobSlug, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]applicationDTO, 0, len(applications))
	for _, a := range applications {
		items = append(items, applicationToDTO(a))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func contactToDTO(v inquiry.ContactMessage) contactMessageDTO {
	return contactMessageDTO{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Message:   v.Message,
		CreatedAt: formatTime(v.CreatedAt),
	}
}

func applicationToDTO(v inquiry.Application) applicationDTO {
	return applicationDTO{
		ID:           v.ID,
		JobSlug:      v.JobSlug,
		Name:         v.Name,
		Email:        v.Email,
		PortfolioURL: v.PortfolioURL,
		CoverLetter:  v.CoverLetter,
		CreatedAt:    formatTime(v.CreatedAt),
	}
}
