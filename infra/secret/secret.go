package secret

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/secretmanager"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type Manager struct {
	prov    *gcp.Provider
	service *projects.Service
}

// SetupSecretManager enables the API and returns a Manager that creates
// secrets depending on it.
func SetupSecretManager(ctx *pulumi.Context, prov *gcp.Provider) (*Manager, error) {
	svc, err := projects.NewService(ctx, "secretManagerService", &projects.ServiceArgs{
		Service: pulumi.String("secretmanager.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}
	return &Manager{prov: prov, service: svc}, nil
}

// AddSecret stores value as the first version of secretID and lets the
// service account read it. It returns the secret id for env var references.
func (m *Manager) AddSecret(ctx *pulumi.Context,
	resourceName,
	secretID string,
	value pulumi.StringInput,
	reader *serviceaccount.Account) (pulumi.StringOutput, error) {
	emptyString := pulumi.String("").ToStringOutput()

	s, err := secretmanager.NewSecret(ctx, resourceName, &secretmanager.SecretArgs{
		SecretId: pulumi.String(secretID),
		Replication: &secretmanager.SecretReplicationArgs{
			Auto: &secretmanager.SecretReplicationAutoArgs{},
		},
	},
		pulumi.Provider(m.prov),
		pulumi.DependsOn([]pulumi.Resource{m.service}),
	)
	if err != nil {
		return emptyString, err
	}

	_, err = secretmanager.NewSecretVersion(ctx, resourceName+"Version", &secretmanager.SecretVersionArgs{
		Secret:     s.ID(),
		SecretData: value,
	},
		pulumi.Provider(m.prov),
	)
	if err != nil {
		return emptyString, err
	}

	_, err = secretmanager.NewSecretIamMember(ctx, resourceName+"Accessor", &secretmanager.SecretIamMemberArgs{
		SecretId: s.SecretId,
		Role:     pulumi.String("roles/secretmanager.secretAccessor"),
		Member: reader.Email.ApplyT(func(email string) string {
			return fmt.Sprintf("serviceAccount:%s", email)
		}).(pulumi.StringOutput),
	},
		pulumi.Provider(m.prov),
	)
	if err != nil {
		return emptyString, err
	}

	return s.SecretId, nil
}
