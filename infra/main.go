package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/schedule-assistant/infra/cloudrun"
	"github.com/GregMSThompson/schedule-assistant/infra/docker"
	"github.com/GregMSThompson/schedule-assistant/infra/firestore"
	"github.com/GregMSThompson/schedule-assistant/infra/identity"
	"github.com/GregMSThompson/schedule-assistant/infra/provider"
	"github.com/GregMSThompson/schedule-assistant/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		appCfg := config.New(ctx, "app")
		llmProvider := appCfg.Get("llmProvider")
		recordStore := appCfg.Get("recordStore")
		authRequired := appCfg.GetBool("authRequired")

		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		var deps []pulumi.Resource

		// firebase auth in front of /chat
		if authRequired {
			ident, err := identity.SetupIdentity(ctx, prov)
			if err != nil {
				return err
			}
			deps = append(deps, ident)
		}

		if recordStore == "firestore" {
			db, err := firestore.SetupFirestore(ctx, prov)
			if err != nil {
				return err
			}
			deps = append(deps, db)
		}

		if llmProvider == "vertex" {
			svc, err := vertex.SetupVertex(ctx, prov)
			if err != nil {
				return err
			}
			deps = append(deps, svc)
		}

		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}
		deps = append(deps, repo)

		_, err = cloudrun.SetupCloudRun(ctx, prov, deps...)
		return err
	})
}
