package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("ses-123")}, nil
}

func TestSESSender_Simple(t *testing.T) {
	fake := &fakeSES{}
	s := NewSESSender(fake, "FBC Bank <reports@outrisk.co.zw>")

	receipt, err := s.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "ses-123", receipt.MessageID)
	assert.Equal(t, "ses", receipt.Provider)

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, "FBC Bank <reports@outrisk.co.zw>", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"tendai@example.com"}, in.Destination.ToAddresses)
	require.NotNil(t, in.Content.Simple)
	assert.Nil(t, in.Content.Raw)
	assert.Equal(t, "FBC MasterCard Application Confirmation", aws.ToString(in.Content.Simple.Subject.Data))
	assert.Equal(t, "Dear Tendai Moyo,", aws.ToString(in.Content.Simple.Body.Text.Data))
}

func TestSESSender_RawWithAttachment(t *testing.T) {
	fake := &fakeSES{}
	s := NewSESSender(fake, "reports@outrisk.co.zw")

	msg := testMessage()
	msg.Attachments = []Attachment{{Filename: "application.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}}
	_, err := s.Send(context.Background(), msg)
	require.NoError(t, err)

	in := fake.inputs[0]
	assert.Nil(t, in.Content.Simple)
	require.NotNil(t, in.Content.Raw)
	assert.Contains(t, string(in.Content.Raw.Data), `filename=application.pdf`)
}

func TestSESSender_Error(t *testing.T) {
	s := NewSESSender(&fakeSES{err: errors.New("MessageRejected")}, "reports@outrisk.co.zw")
	_, err := s.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MessageRejected")

	_, err = NewSESSender(nil, "x").Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
