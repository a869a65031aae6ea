package store

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/schedule-assistant/internal/errs"
)

// Secret references look like
// projects/{project}/secrets/{name}[/versions/{version}]

type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

type secretsStore struct {
	client secretAccessor
}

func NewSecretsStore(client secretAccessor) *secretsStore {
	return &secretsStore{client: client}
}

// IsSecretRef reports whether value names a Secret Manager secret rather
// than holding the credential itself.
func IsSecretRef(value string) bool {
	return strings.HasPrefix(value, "projects/") && strings.Contains(value, "/secrets/")
}

func secretVersionName(ref string) string {
	if strings.Contains(ref, "/versions/") {
		return ref
	}
	return strings.TrimRight(ref, "/") + "/versions/latest"
}

// Resolve returns value unchanged unless it is a secret reference, in which
// case the secret payload is fetched.
func (s *secretsStore) Resolve(ctx context.Context, value string) (string, error) {
	if !IsSecretRef(value) {
		return value, nil
	}
	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretVersionName(value),
	})
	if status.Code(err) == codes.NotFound {
		return "", errs.NewNotFoundError(fmt.Sprintf("secret %s not found", value))
	}
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", value, err)
	}
	return strings.TrimSpace(string(res.GetPayload().GetData())), nil
}
