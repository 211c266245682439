// Package validate checks and sanitizes write-request payloads. A request
// either passes every rule and becomes a storable model, or the full list of
// violations comes back and nothing is applied.
package validate

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"foresight/internal/config"
	"foresight/internal/models"
)

const dateLayout = "2006-01-02"

// Substring shapes that have no business in a prediction form. Matching any
// of them rejects the field outright rather than trying to strip them.
var blocklist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<\s*script`),
	regexp.MustCompile(`(?i)<\s*iframe`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)\bon(load|click|error|mouseover|focus|submit)\s*=`),
	regexp.MustCompile(`(?i)\b(union\s+select|select\s+.+\s+from|drop\s+table|insert\s+into|delete\s+from|update\s+\w+\s+set)\b`),
	regexp.MustCompile(`(?i)(--|;)\s*(drop|delete|update|insert)\b`),
}

type PredictionRequest struct {
	PredictorName     string `json:"predictor_name"`
	PredictionText    string `json:"prediction_text"`
	PredictedDate     string `json:"predicted_date"`
	TargetDate        string `json:"target_date"`
	TargetDescription string `json:"target_description"`
	Category          string `json:"category"`
	Confidence        *int   `json:"confidence"`
	SourceURL         string `json:"source_url"`
	Notes             string `json:"notes"`

	// Honeypot and timing fields, consumed by the abuse checks.
	Website       string `json:"website"`
	FormStartedAt int64  `json:"form_started_at"`
}

type VerificationRequest struct {
	Outcome       string `json:"outcome"`
	ActualOutcome string `json:"actual_outcome"`
	EvidenceURL   string `json:"evidence_url"`
	VerifierName  string `json:"verifier_name"`
	Score         *int   `json:"score"`
	Notes         string `json:"notes"`

	Website       string `json:"website"`
	FormStartedAt int64  `json:"form_started_at"`
}

// Prediction validates req against the configured limits and returns the
// model to store, or the accumulated violation messages.
func Prediction(req PredictionRequest, now time.Time, limits config.ValidationConfig) (*models.Prediction, []string) {
	var msgs []string

	name := strings.TrimSpace(req.PredictorName)
	text := strings.TrimSpace(req.PredictionText)

	msgs = append(msgs, checkRequired("predictor_name", name)...)
	msgs = append(msgs, checkRequired("prediction_text", text)...)
	msgs = append(msgs, checkLen("predictor_name", name, limits.MaxNameLen)...)
	msgs = append(msgs, checkLen("prediction_text", text, limits.MaxTextLen)...)
	msgs = append(msgs, checkLen("target_description", req.TargetDescription, limits.MaxTextLen)...)
	msgs = append(msgs, checkLen("notes", req.Notes, limits.MaxNotesLen)...)
	msgs = append(msgs, checkLen("source_url", req.SourceURL, limits.MaxURLLen)...)
	msgs = append(msgs, checkBlocklist("predictor_name", name)...)
	msgs = append(msgs, checkBlocklist("prediction_text", text)...)
	msgs = append(msgs, checkBlocklist("target_description", req.TargetDescription)...)
	msgs = append(msgs, checkBlocklist("notes", req.Notes)...)

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = models.CategoryOther
	} else if !models.ValidCategory(category) {
		msgs = append(msgs, fmt.Sprintf("category must be one of: %s", strings.Join(models.Categories(), ", ")))
	}

	confidence := 5
	if req.Confidence != nil {
		confidence = *req.Confidence
		if confidence < 1 || confidence > 10 {
			msgs = append(msgs, "confidence must be between 1 and 10")
		}
	}

	var predictedDate time.Time
	if strings.TrimSpace(req.PredictedDate) == "" {
		msgs = append(msgs, "predicted_date is required")
	} else {
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(req.PredictedDate))
		if err != nil {
			msgs = append(msgs, "predicted_date must be a valid date (YYYY-MM-DD)")
		} else if parsed.After(truncateToDay(now)) {
			msgs = append(msgs, "predicted_date may not be in the future")
		} else {
			predictedDate = parsed
		}
	}

	var targetDate *time.Time
	if strings.TrimSpace(req.TargetDate) != "" {
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(req.TargetDate))
		if err != nil {
			msgs = append(msgs, "target_date must be a valid date (YYYY-MM-DD)")
		} else if !predictedDate.IsZero() && !parsed.After(predictedDate) {
			msgs = append(msgs, "target_date must be after predicted_date")
		} else {
			targetDate = &parsed
		}
	}

	msgs = append(msgs, checkURL("source_url", req.SourceURL)...)

	if len(msgs) > 0 {
		return nil, msgs
	}

	return &models.Prediction{
		PredictorName:     html.EscapeString(name),
		PredictionText:    html.EscapeString(text),
		PredictedDate:     predictedDate,
		TargetDate:        targetDate,
		TargetDescription: escapedPtr(req.TargetDescription),
		Category:          category,
		Confidence:        confidence,
		SourceURL:         trimmedPtr(req.SourceURL),
		Notes:             escapedPtr(req.Notes),
	}, nil
}

// Verification validates req and returns the model to store, minus the
// prediction binding which the service layer owns.
func Verification(req VerificationRequest, now time.Time, limits config.ValidationConfig) (*models.Verification, []string) {
	var msgs []string

	outcome := strings.TrimSpace(req.Outcome)
	actual := strings.TrimSpace(req.ActualOutcome)
	verifier := strings.TrimSpace(req.VerifierName)

	msgs = append(msgs, checkRequired("outcome", outcome)...)
	msgs = append(msgs, checkRequired("actual_outcome", actual)...)
	msgs = append(msgs, checkRequired("verifier_name", verifier)...)
	msgs = append(msgs, checkLen("actual_outcome", actual, limits.MaxTextLen)...)
	msgs = append(msgs, checkLen("verifier_name", verifier, limits.MaxNameLen)...)
	msgs = append(msgs, checkLen("notes", req.Notes, limits.MaxNotesLen)...)
	msgs = append(msgs, checkLen("evidence_url", req.EvidenceURL, limits.MaxURLLen)...)
	msgs = append(msgs, checkBlocklist("actual_outcome", actual)...)
	msgs = append(msgs, checkBlocklist("verifier_name", verifier)...)
	msgs = append(msgs, checkBlocklist("notes", req.Notes)...)

	if outcome != "" && !models.ValidOutcome(outcome) {
		msgs = append(msgs, fmt.Sprintf("outcome must be one of: %s", strings.Join(models.Outcomes(), ", ")))
	}

	score := 5
	if req.Score != nil {
		score = *req.Score
		if score < 1 || score > 10 {
			msgs = append(msgs, "score must be between 1 and 10")
		}
	}

	msgs = append(msgs, checkURL("evidence_url", req.EvidenceURL)...)

	if len(msgs) > 0 {
		return nil, msgs
	}

	return &models.Verification{
		Outcome:       outcome,
		ActualOutcome: html.EscapeString(actual),
		EvidenceURL:   trimmedPtr(req.EvidenceURL),
		VerifierName:  html.EscapeString(verifier),
		Score:         score,
		Notes:         escapedPtr(req.Notes),
		VerifiedAt:    now.UTC(),
	}, nil
}

func checkRequired(field, value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{field + " is required"}
	}
	return nil
}

func checkLen(field, value string, max int) []string {
	if max > 0 && len(value) > max {
		return []string{fmt.Sprintf("%s exceeds maximum length of %d", field, max)}
	}
	return nil
}

func checkBlocklist(field, value string) []string {
	for _, re := range blocklist {
		if re.MatchString(value) {
			return []string{field + " contains disallowed content"}
		}
	}
	return nil
}

func checkURL(field, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return []string{field + " must be a valid http(s) URL"}
	}
	return nil
}

func escapedPtr(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	escaped := html.EscapeString(value)
	return &escaped
}

func trimmedPtr(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
