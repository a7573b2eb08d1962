package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	got *ses.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
}

type fakeSNS struct {
	got *sns.PublishInput
	err error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
}

func TestMailer_SendEmail(t *testing.T) {
	client := &fakeSES{}
	id, err := NewMailer(client, "loans@example.com").SendEmail(context.Background(), "asha@example.com", "Hello", "Body")
	require.NoError(t, err)

	assert.Equal(t, "ses-1", id)
	assert.Equal(t, []string{"asha@example.com"}, client.got.Destination.ToAddresses)
	assert.Equal(t, "loans@example.com", aws.ToString(client.got.Source))
	assert.Equal(t, "Hello", aws.ToString(client.got.Message.Subject.Data))
	assert.Equal(t, "Body", aws.ToString(client.got.Message.Body.Text.Data))
}

func TestMailer_SendEmailError(t *testing.T) {
	_, err := NewMailer(&fakeSES{err: errors.New("throttled")}, "x@example.com").
		SendEmail(context.Background(), "asha@example.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asha@example.com")
}

func TestTexter_SendSMS(t *testing.T) {
	client := &fakeSNS{}
	id, err := NewTexter(client).SendSMS(context.Background(), "+919800000001", "Applied")
	require.NoError(t, err)

	assert.Equal(t, "sns-1", id)
	assert.Equal(t, "+919800000001", aws.ToString(client.got.PhoneNumber))
	assert.Equal(t, "Transactional", aws.ToString(client.got.MessageAttributes["AWS.SNS.SMS.SMSType"].StringValue))

	_, err = NewTexter(&fakeSNS{err: errors.New("opted out")}).SendSMS(context.Background(), "+91", "x")
	assert.Error(t, err)
}
