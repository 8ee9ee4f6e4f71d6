package mockoracle_test

import (
	"context"
	"testing"

	"github.com/cipherwatch/cipherwatch-go/internal/sealing"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/mockoracle"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/oracle"
)

func newOracle(t *testing.T) (*mockoracle.Oracle, *sealing.Codec) {
	t.Helper()
	key, err := sealing.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	codec, err := sealing.NewCodec(key)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	orc, err := mockoracle.New(codec)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return orc, codec
}

func TestRequestIssuesUniqueIDs(t *testing.T) {
	orc, codec := newOracle(t)
	ctx := context.Background()

	score, err := codec.SealScore(10)
	if err != nil {
		t.Fatalf("SealScore: %v", err)
	}
	threshold, err := codec.SealScore(5)
	if err != nil {
		t.Fatalf("SealScore: %v", err)
	}

	seen := make(map[cipherwatch.RequestID]bool)
	for i := 0; i < 50; i++ {
		id, err := orc.Request(ctx, cipherwatch.KindRiskEvaluation, []cipherwatch.SealedValue{score, threshold})
		if err != nil {
			t.Fatalf("Request %d: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("request id %q issued twice", id)
		}
		seen[id] = true
	}
	if orc.Pending() != 50 {
		t.Fatalf("Pending = %d, want 50", orc.Pending())
	}
}

func TestRiskEvaluationCallback(t *testing.T) {
	orc, codec := newOracle(t)
	ctx := context.Background()
	verifier, err := oracle.NewVerifier(orc.PublicKey())
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	cases := []struct {
		name      string
		score     uint64
		threshold uint64
		want      bool
	}{
		{"above threshold", 80, 50, true},
		{"below threshold", 10, 50, false},
		{"equal is not above", 50, 50, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, err := codec.SealScore(tc.score)
			if err != nil {
				t.Fatalf("SealScore: %v", err)
			}
			threshold, err := codec.SealScore(tc.threshold)
			if err != nil {
				t.Fatalf("SealScore: %v", err)
			}

			id, err := orc.Request(ctx, cipherwatch.KindRiskEvaluation, []cipherwatch.SealedValue{score, threshold})
			if err != nil {
				t.Fatalf("Request: %v", err)
			}

			d, ok := orc.Next()
			if !ok {
				t.Fatal("no delivery queued")
			}
			if d.Callback.RequestID != id {
				t.Fatalf("delivery for %q, want %q", d.Callback.RequestID, id)
			}
			if err := verifier.Verify(d.Callback.RequestID, d.Callback.Payload, d.Callback.Proof); err != nil {
				t.Fatalf("Verify: %v", err)
			}
			got, err := oracle.DecodeBool(d.Callback.Payload)
			if err != nil {
				t.Fatalf("DecodeBool: %v", err)
			}
			if got != tc.want {
				t.Fatalf("verdict = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestContentRevealCallback(t *testing.T) {
	orc, codec := newOracle(t)
	ctx := context.Background()

	content, err := codec.SealText("the plaintext")
	if err != nil {
		t.Fatalf("SealText: %v", err)
	}
	if _, err := orc.Request(ctx, cipherwatch.KindContentReveal, []cipherwatch.SealedValue{content}); err != nil {
		t.Fatalf("Request: %v", err)
	}

	d, ok := orc.Next()
	if !ok {
		t.Fatal("no delivery queued")
	}
	text, err := oracle.DecodeText(d.Callback.Payload)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if text != "the plaintext" {
		t.Fatalf("payload = %q", text)
	}
}

func TestRequestRejectsWrongArity(t *testing.T) {
	orc, codec := newOracle(t)
	ctx := context.Background()

	v, err := codec.SealScore(1)
	if err != nil {
		t.Fatalf("SealScore: %v", err)
	}

	if _, err := orc.Request(ctx, cipherwatch.KindRiskEvaluation, []cipherwatch.SealedValue{v}); err == nil {
		t.Fatal("risk evaluation with one value should fail")
	}
	if _, err := orc.Request(ctx, cipherwatch.KindContentReveal, nil); err == nil {
		t.Fatal("content reveal with no values should fail")
	}
	if orc.Pending() != 0 {
		t.Fatalf("Pending = %d after rejected requests, want 0", orc.Pending())
	}
}

func TestForgeBreaksVerification(t *testing.T) {
	orc, codec := newOracle(t)
	ctx := context.Background()
	verifier, err := oracle.NewVerifier(orc.PublicKey())
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	content, err := codec.SealText("x")
	if err != nil {
		t.Fatalf("SealText: %v", err)
	}
	if _, err := orc.Request(ctx, cipherwatch.KindContentReveal, []cipherwatch.SealedValue{content}); err != nil {
		t.Fatalf("Request: %v", err)
	}
	d, _ := orc.Next()

	forged, err := mockoracle.Forge(d.Callback)
	if err != nil {
		t.Fatalf("Forge: %v", err)
	}
	if err := verifier.Verify(forged.RequestID, forged.Payload, forged.Proof); err == nil {
		t.Fatal("forged proof verified")
	}
}
