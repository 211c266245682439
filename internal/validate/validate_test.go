package validate

import (
	"strings"
	"testing"
	"time"

	"foresight/internal/config"
	"foresight/internal/models"
)

var testLimits = config.ValidationConfig{
	MaxNameLen:  100,
	MaxTextLen:  2000,
	MaxURLLen:   500,
	MaxNotesLen: 1000,
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func validPredictionRequest() PredictionRequest {
	return PredictionRequest{
		PredictorName:  "A",
		PredictionText: "X",
		PredictedDate:  "2020-01-01",
	}
}

func TestPrediction_MinimalRequestPasses(t *testing.T) {
	item, msgs := Prediction(validPredictionRequest(), testNow, testLimits)
	if len(msgs) != 0 {
		t.Fatalf("unexpected messages: %v", msgs)
	}
	if item.Category != models.CategoryOther {
		t.Fatalf("category=%s want=%s", item.Category, models.CategoryOther)
	}
	if item.Confidence != 5 {
		t.Fatalf("confidence=%d want=5", item.Confidence)
	}
}

func TestPrediction_MissingTextRejected(t *testing.T) {
	req := validPredictionRequest()
	req.PredictionText = ""
	item, msgs := Prediction(req, testNow, testLimits)
	if item != nil {
		t.Fatal("expected nil model")
	}
	found := false
	for _, m := range msgs {
		if strings.Contains(m, "prediction_text") {
			found = true
		}
	}
	if !found {
		t.Fatalf("messages=%v want mention of prediction_text", msgs)
	}
}

func TestPrediction_ConfidenceBoundaries(t *testing.T) {
	for _, v := range []int{1, 10} {
		req := validPredictionRequest()
		req.Confidence = &v
		if _, msgs := Prediction(req, testNow, testLimits); len(msgs) != 0 {
			t.Fatalf("confidence=%d rejected: %v", v, msgs)
		}
	}
	for _, v := range []int{0, 11, -1} {
		req := validPredictionRequest()
		req.Confidence = &v
		if item, _ := Prediction(req, testNow, testLimits); item != nil {
			t.Fatalf("confidence=%d accepted", v)
		}
	}
}

func TestPrediction_FutureDateRejected(t *testing.T) {
	req := validPredictionRequest()
	req.PredictedDate = "2030-01-01"
	if item, _ := Prediction(req, testNow, testLimits); item != nil {
		t.Fatal("future predicted_date accepted")
	}
}

func TestPrediction_TargetDateMustFollowPredictedDate(t *testing.T) {
	req := validPredictionRequest()
	req.TargetDate = "2019-12-31"
	if item, _ := Prediction(req, testNow, testLimits); item != nil {
		t.Fatal("target_date before predicted_date accepted")
	}

	req = validPredictionRequest()
	req.TargetDate = "2020-01-01"
	if item, _ := Prediction(req, testNow, testLimits); item != nil {
		t.Fatal("target_date equal to predicted_date accepted")
	}

	req = validPredictionRequest()
	req.TargetDate = "2025-01-01"
	item, msgs := Prediction(req, testNow, testLimits)
	if item == nil {
		t.Fatalf("valid target_date rejected: %v", msgs)
	}
	if item.TargetDate == nil {
		t.Fatal("target_date not set")
	}
}

func TestPrediction_BlocklistRejected(t *testing.T) {
	cases := []string{
		"check this <script>alert(1)</script>",
		"<SCRIPT src=x>",
		"click javascript:void(0)",
		"a onload=steal()",
		"1; DROP TABLE predictions",
		"x' UNION SELECT password FROM users",
	}
	for _, text := range cases {
		req := validPredictionRequest()
		req.PredictionText = text
		if item, _ := Prediction(req, testNow, testLimits); item != nil {
			t.Fatalf("blocklisted text accepted: %q", text)
		}
	}
}

func TestPrediction_FreeTextEscaped(t *testing.T) {
	req := validPredictionRequest()
	req.PredictionText = `rates will be <2% & falling`
	item, msgs := Prediction(req, testNow, testLimits)
	if item == nil {
		t.Fatalf("rejected: %v", msgs)
	}
	if strings.Contains(item.PredictionText, "<") || !strings.Contains(item.PredictionText, "&lt;") {
		t.Fatalf("text not escaped: %q", item.PredictionText)
	}
	if !strings.Contains(item.PredictionText, "&amp;") {
		t.Fatalf("ampersand not escaped: %q", item.PredictionText)
	}
}

func TestPrediction_LengthLimit(t *testing.T) {
	req := validPredictionRequest()
	req.PredictorName = strings.Repeat("a", 101)
	if item, _ := Prediction(req, testNow, testLimits); item != nil {
		t.Fatal("over-length predictor_name accepted")
	}
}

func TestPrediction_BadURLRejected(t *testing.T) {
	req := validPredictionRequest()
	req.SourceURL = "ftp://example.com/x"
	if item, _ := Prediction(req, testNow, testLimits); item != nil {
		t.Fatal("non-http url accepted")
	}
	req.SourceURL = "https://example.com/article"
	if item, msgs := Prediction(req, testNow, testLimits); item == nil {
		t.Fatalf("valid url rejected: %v", msgs)
	}
}

func TestPrediction_AccumulatesAllMessages(t *testing.T) {
	req := PredictionRequest{Category: "bogus"}
	_, msgs := Prediction(req, testNow, testLimits)
	if len(msgs) < 3 {
		t.Fatalf("messages=%v want at least predictor_name, prediction_text, predicted_date, category", msgs)
	}
}

func validVerificationRequest() VerificationRequest {
	return VerificationRequest{
		Outcome:       models.OutcomeCorrect,
		ActualOutcome: "it happened",
		VerifierName:  "B",
	}
}

func TestVerification_Valid(t *testing.T) {
	item, msgs := Verification(validVerificationRequest(), testNow, testLimits)
	if item == nil {
		t.Fatalf("rejected: %v", msgs)
	}
	if item.Score != 5 {
		t.Fatalf("score=%d want=5", item.Score)
	}
	if item.VerifiedAt.IsZero() {
		t.Fatal("verified_at not set")
	}
}

func TestVerification_UnknownOutcomeRejected(t *testing.T) {
	req := validVerificationRequest()
	req.Outcome = "sorta"
	if item, _ := Verification(req, testNow, testLimits); item != nil {
		t.Fatal("unknown outcome accepted")
	}
}

func TestVerification_ScoreRange(t *testing.T) {
	for _, v := range []int{1, 10} {
		req := validVerificationRequest()
		req.Score = &v
		if item, msgs := Verification(req, testNow, testLimits); item == nil {
			t.Fatalf("score=%d rejected: %v", v, msgs)
		}
	}
	v := 11
	req := validVerificationRequest()
	req.Score = &v
	if item, _ := Verification(req, testNow, testLimits); item != nil {
		t.Fatal("score=11 accepted")
	}
}
