package aws_handler_test

import (
	"context"
	"errors"
	aws_handler "painel/src/utils/aws"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	secretsmanageriface.SecretsManagerAPI
	values map[string]*string
}

func (f *fakeSecrets) GetSecretValueWithContext(_ aws.Context, in *secretsmanager.GetSecretValueInput, _ ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	v, ok := f.values[aws.StringValue(in.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: v}, nil
}

func TestGetSecretValue(t *testing.T) {
	sm := aws_handler.NewSecretManager(&fakeSecrets{values: map[string]*string{
		"painel/dsn": aws.String("postgres://painel"),
		"binary":     nil,
	}})

	v, err := sm.GetSecretValue(context.Background(), "painel/dsn")
	require.NoError(t, err)
	assert.Equal(t, "postgres://painel", v)

	_, err = sm.GetSecretValue(context.Background(), "binary")
	assert.Error(t, err)

	_, err = sm.GetSecretValue(context.Background(), "missing")
	assert.Error(t, err)
}
