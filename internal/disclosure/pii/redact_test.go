package pii_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam247/disclosurely-sub001/internal/disclosure/pii"
)

func TestRedactionMap_NumbersPerCategory(t *testing.T) {
	res := scan(t, "Contact jane@example.com or john@example.com, SSN 123-45-6789.")

	m := pii.RedactionMap(res)
	require.Len(t, m, 3)

	assert.Equal(t, "[EMAIL_1]", m["jane@example.com"])
	assert.Equal(t, "[EMAIL_2]", m["john@example.com"])
	assert.Equal(t, "[SSN_1]", m["123-45-6789"])
}

func TestRedactionApply(t *testing.T) {
	text := "Contact jane@example.com, SSN 123-45-6789."
	res := scan(t, text)

	redacted := pii.Apply(text, pii.RedactionMap(res))

	assert.Equal(t, "Contact [EMAIL_1], SSN [SSN_1].", redacted)
	assert.NotContains(t, redacted, "jane@example.com")
}

func TestRedactionApply_RepeatedOriginal(t *testing.T) {
	detector := pii.NewPatternDetector(pii.DetectorConfig{})
	text := "Mail jane@example.com; again: jane@example.com"
	res, err := detector.Scan(context.Background(), text)
	require.NoError(t, err)

	redacted := pii.Apply(text, pii.RedactionMap(res))

	assert.Equal(t, "Mail [EMAIL_1]; again: [EMAIL_1]", redacted)
}
