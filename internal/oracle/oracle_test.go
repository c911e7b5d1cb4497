package oracle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONPlainObject(t *testing.T) {
	raw := `{"action": "read"}`
	assert.Equal(t, raw, extractJSON(raw))
}

func TestExtractJSONFromMarkdownFence(t *testing.T) {
	raw := "Sure! Here you go:\n```json\n{\"action\": \"move\"}\n```\nHope that helps."
	assert.Equal(t, `{"action": "move"}`, extractJSON(raw))
}

func TestExtractJSONWithChatter(t *testing.T) {
	raw := `I think she should paint. {"action": "paint", "params": {}} That's my call.`
	assert.Equal(t, `{"action": "paint", "params": {}}`, extractJSON(raw))
}

func TestExtractJSONArray(t *testing.T) {
	raw := `The steps: [{"kind": "move"}] done`
	assert.Equal(t, `[{"kind": "move"}]`, extractJSON(raw))
}

func TestExtractJSONNothingThere(t *testing.T) {
	assert.Empty(t, extractJSON("I have no idea what to do."))
}

func TestDecodeDecisionWithAction(t *testing.T) {
	dec, err := decodeDecision(`{"monologue": "Time to eat.", "action": "eat", "params": {"target": "fridge"}}`)
	assert.NoError(t, err)
	assert.Equal(t, "eat", dec.Action)
	assert.Equal(t, "fridge", dec.Params["target"])
}

func TestDecodeDecisionNullActionIsMonologueOnly(t *testing.T) {
	dec, err := decodeDecision(`{"monologue": "I'll just sit with this for a moment.", "action": null}`)
	assert.NoError(t, err, "a thought with no action is a legitimate decision")
	assert.Empty(t, dec.Action)
	assert.Equal(t, "I'll just sit with this for a moment.", dec.Monologue)
}

func TestDecodeDecisionAbsentActionIsMonologueOnly(t *testing.T) {
	dec, err := decodeDecision(`{"monologue": "Not now."}`)
	assert.NoError(t, err)
	assert.Empty(t, dec.Action)
	assert.Equal(t, "Not now.", dec.Monologue)
}

func TestDecodeDecisionEmptyReplyIsAnError(t *testing.T) {
	_, err := decodeDecision(`{}`)
	assert.Error(t, err, "neither action nor monologue says nothing at all")

	_, err = decodeDecision("I can't answer in JSON, sorry.")
	assert.Error(t, err)
}

func TestIsQuotaErr(t *testing.T) {
	assert.True(t, IsQuotaErr(errors.New("googleapi: Error 429: Resource has been exhausted")))
	assert.True(t, IsQuotaErr(errors.New("quota exceeded for quota metric")))
	assert.True(t, IsQuotaErr(errors.New("rate limit hit, slow down")))
	assert.False(t, IsQuotaErr(errors.New("connection refused")))
	assert.False(t, IsQuotaErr(nil))
}

func TestNormalizeObjectID(t *testing.T) {
	assert.Equal(t, "park_bench", normalizeObjectID(" Park Bench "))
	assert.Equal(t, "street_lamp", normalizeObjectID("street_lamp"))
}
