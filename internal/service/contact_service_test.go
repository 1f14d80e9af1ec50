package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/rentcar-service/internal/events"
	apperrors "github.com/spec-kit/rentcar-service/pkg/util/errorutil"
)

func TestContactService_SubmitAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.contact.Submit(ctx, "Ali", "ali@x.com", "first")
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = f.contact.Submit(ctx, "Vali", "vali@x.com", "second")
	require.NoError(t, err)

	msgs, err := f.contact.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "second", msgs[0].Message)
	assert.Equal(t, t0.Add(time.Minute), msgs[0].Date)
}

func TestContactService_SubmitValidation(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.contact.Submit(context.Background(), "Ali", "ali@x.com", "   ")
	requireCode(t, err, apperrors.CodeValidation)
}

func TestContactService_EventCarriesPreview(t *testing.T) {
	f := newFixture(t, nil)
	var got events.MessageReceivedPayload
	f.dispatcher.Subscribe(events.EventMessageReceived, func(_ context.Context, e events.Event) error {
		got = e.Payload.(events.MessageReceivedPayload)
		return nil
	})

	long := strings.Repeat("x", 200)
	_, err := f.contact.Submit(context.Background(), "Ali", "ali@x.com", long)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", previewLength)+"...", got.BodyPreview)
	assert.Equal(t, "ali@x.com", got.Email)
}
