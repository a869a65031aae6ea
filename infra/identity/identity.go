package identity

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/identityplatform"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// SetupIdentity enables Identity Platform so chat clients can sign in with
// Firebase and send ID tokens.
func SetupIdentity(ctx *pulumi.Context, prov *gcp.Provider) (*identityplatform.Config, error) {
	svc, err := projects.NewService(ctx, "identityToolkit", &projects.ServiceArgs{
		Service: pulumi.String("identitytoolkit.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return identityplatform.NewConfig(ctx, "identityPlatformConfig", &identityplatform.ConfigArgs{
		SignIn: &identityplatform.ConfigSignInArgs{
			Anonymous: &identityplatform.ConfigSignInAnonymousArgs{
				Enabled: pulumi.Bool(true),
			},
			Email: &identityplatform.ConfigSignInEmailArgs{
				Enabled: pulumi.Bool(true),
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{svc}),
	)
}
