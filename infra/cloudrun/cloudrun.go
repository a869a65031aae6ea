package cloudrun

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrun"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/schedule-assistant/infra/common"
	"github.com/GregMSThompson/schedule-assistant/infra/secret"
)

const containerPort = 8000

type envArray = cloudrun.ServiceTemplateSpecContainerEnvArray

func SetupCloudRun(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*serviceaccount.Account, error) {
	img, err := buildApiImage(ctx, res...)
	if err != nil {
		return nil, err
	}

	srv, err := enableCloudRun(ctx, prov)
	if err != nil {
		return nil, err
	}

	apiSA, err := createServiceAccount(ctx, prov)
	if err != nil {
		return nil, err
	}

	envs, err := buildEnv(ctx, prov, apiSA)
	if err != nil {
		return nil, err
	}

	svc, err := createCloudRunService(ctx, img, apiSA, envs, prov, srv)
	if err != nil {
		return nil, err
	}

	if err := setIAMAccessPolicy(ctx, svc, prov); err != nil {
		return nil, err
	}

	ctx.Export("url", svc.Statuses.Index(pulumi.Int(0)).Url())
	return apiSA, nil
}

func buildApiImage(ctx *pulumi.Context, res ...pulumi.Resource) (*docker.Image, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	hash, err := common.SourceHash("..")
	if err != nil {
		return nil, err
	}

	return docker.NewImage(ctx, "apiImage", &docker.ImageArgs{
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/amd64"),
			Context:    pulumi.String(".."),
			Dockerfile: pulumi.String("../cmd/api/Dockerfile"),
		},
		ImageName: pulumi.String(fmt.Sprintf("%s-docker.pkg.dev/%s/schedule-assistant/api:%s", region, projectID, hash)),
	},
		pulumi.DependsOn(res),
	)
}

func enableCloudRun(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "cloudRunService", &projects.ServiceArgs{
		Service: pulumi.String("run.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createServiceAccount(ctx *pulumi.Context, prov *gcp.Provider) (*serviceaccount.Account, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	apiSA, err := serviceaccount.NewAccount(ctx, "apiServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("schedule-assistant"),
		DisplayName: pulumi.String("Schedule Assistant API"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	member := apiSA.Email.ApplyT(func(email string) string {
		return fmt.Sprintf("serviceAccount:%s", email)
	}).(pulumi.StringOutput)

	roles := map[string]string{
		"firestoreAccess": "roles/datastore.user",
		"vertexAccess":    "roles/aiplatform.user",
	}
	for name, role := range roles {
		_, err = projects.NewIAMMember(ctx, name, &projects.IAMMemberArgs{
			Role:    pulumi.String(role),
			Member:  member,
			Project: pulumi.String(projectID),
		},
			pulumi.Provider(prov),
		)
		if err != nil {
			return nil, err
		}
	}

	return apiSA, nil
}

// buildEnv maps stack config onto the variables the API reads at startup.
// Credentials go through Secret Manager rather than plain env values.
func buildEnv(ctx *pulumi.Context, prov *gcp.Provider, apiSA *serviceaccount.Account) (envArray, error) {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")
	appCfg := config.New(ctx, "app")

	plain := map[string]string{
		"PROJECTID":          gcpCfg.Require("project"),
		"REGION":             gcpCfg.Require("region"),
		"LOGLEVEL":           crCfg.Require("logLevel"),
		"LLMPROVIDER":        appCfg.Require("llmProvider"),
		"RECORDSTORE":        appCfg.Require("recordStore"),
		"AUTHREQUIRED":       strconv.FormatBool(appCfg.GetBool("authRequired")),
		"OPENAIMODEL":        appCfg.Get("openaiModel"),
		"VERTEXMODEL":        appCfg.Get("vertexModel"),
		"NOTIONSCHEDULEDBID": appCfg.Get("notionScheduleDbId"),
		"TIMEZONE":           appCfg.Get("timeZone"),
	}

	// sorted so the revision template is stable between runs
	names := make([]string, 0, len(plain))
	for name := range plain {
		names = append(names, name)
	}
	sort.Strings(names)

	var envs envArray
	for _, name := range names {
		value := plain[name]
		if value == "" {
			continue
		}
		envs = append(envs, &cloudrun.ServiceTemplateSpecContainerEnvArgs{
			Name:  pulumi.String(name),
			Value: pulumi.String(value),
		})
	}

	sm, err := secret.SetupSecretManager(ctx, prov)
	if err != nil {
		return nil, err
	}

	secrets := []struct {
		env, key, resource, id string
	}{
		{env: "OPENAIAPIKEY", key: "openaiApiKey", resource: "openaiApiKeySecret", id: "openaiApiKey"},
		{env: "NOTIONTOKEN", key: "notionToken", resource: "notionTokenSecret", id: "notionToken"},
	}
	for _, s := range secrets {
		value, err := appCfg.TrySecret(s.key)
		if err != nil {
			continue
		}
		name, err := sm.AddSecret(ctx, s.resource, s.id, value, apiSA)
		if err != nil {
			return nil, err
		}
		envs = append(envs, &cloudrun.ServiceTemplateSpecContainerEnvArgs{
			Name: pulumi.String(s.env),
			ValueFrom: &cloudrun.ServiceTemplateSpecContainerEnvValueFromArgs{
				SecretKeyRef: &cloudrun.ServiceTemplateSpecContainerEnvValueFromSecretKeyRefArgs{
					Name: name,
					Key:  pulumi.String("latest"),
				},
			},
		})
	}

	return envs, nil
}

func createCloudRunService(ctx *pulumi.Context,
	img *docker.Image,
	apiSA *serviceaccount.Account,
	envs envArray,
	prov *gcp.Provider,
	res ...pulumi.Resource) (*cloudrun.Service, error) {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")

	region := gcpCfg.Require("region")
	timeout, _ := strconv.Atoi(crCfg.Require("timeout"))

	return cloudrun.NewService(ctx, "apiService", &cloudrun.ServiceArgs{
		Location: pulumi.String(region),

		Template: &cloudrun.ServiceTemplateArgs{
			Metadata: &cloudrun.ServiceTemplateMetadataArgs{
				Annotations: pulumi.StringMap{
					"autoscaling.knative.dev/minScale": pulumi.String(crCfg.Require("minScale")),
					"autoscaling.knative.dev/maxScale": pulumi.String(crCfg.Require("maxScale")),

					"run.googleapis.com/cpu":    pulumi.String(crCfg.Require("cpu")),
					"run.googleapis.com/memory": pulumi.String(crCfg.Require("memory")),

					"run.googleapis.com/cpu-throttling":        pulumi.String("true"),
					"run.googleapis.com/container-concurrency": pulumi.String(crCfg.Require("concurrency")),
				},
			},

			Spec: &cloudrun.ServiceTemplateSpecArgs{
				ServiceAccountName: apiSA.Email,
				TimeoutSeconds:     pulumi.Int(timeout),

				Containers: cloudrun.ServiceTemplateSpecContainerArray{
					&cloudrun.ServiceTemplateSpecContainerArgs{
						Image: img.ImageName,
						Ports: cloudrun.ServiceTemplateSpecContainerPortArray{
							&cloudrun.ServiceTemplateSpecContainerPortArgs{
								ContainerPort: pulumi.Int(containerPort),
							},
						},
						Envs: envs,
					},
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

// The API checks Firebase tokens itself when AUTHREQUIRED is set, so the
// service is public at the Cloud Run layer.
func setIAMAccessPolicy(ctx *pulumi.Context, svc *cloudrun.Service, prov *gcp.Provider) error {
	gcpCfg := config.New(ctx, "gcp")

	_, err := cloudrun.NewIamMember(ctx, "publicInvoker", &cloudrun.IamMemberArgs{
		Service:  svc.Name,
		Location: pulumi.String(gcpCfg.Require("region")),
		Role:     pulumi.String("roles/run.invoker"),
		Member:   pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	return err
}
