package options

import (
	"context"

	"experience-manager/core/gateway"
	"experience-manager/core/reconcile"
	"experience-manager/core/sectionapi"
)

// Name is the section name and route segment.
const Name = "options"

// Blueprint describes the options section on top of gw.
func Blueprint(gw *gateway.Client) sectionapi.Blueprint[Option] {
	return sectionapi.Blueprint[Option]{
		Name:   Name,
		Differ: reconcile.Differ[Option]{Policy: reconcile.NewByLocalID},
		Fetch: func(ctx context.Context, experienceID string) ([]Option, error) {
			var dtos []optionDTO
			if err := gw.List(ctx, gateway.Path("experiences", experienceID, "options"), &dtos); err != nil {
				return nil, err
			}
			return fromDTOs(dtos), nil
		},
		Performers: func(parent reconcile.ParentFunc, opts ...reconcile.PerformerOption) sectionapi.Performers[Option] {
			setPaxTypes := func(ctx context.Context, remoteID string, o Option) error {
				return gw.Update(ctx, gateway.Path("options", remoteID, "pax-types"), toPaxTypes(o))
			}

			return sectionapi.Performers[Option]{
				Create: reconcile.NewCreatePerformer(Name, parent, toPayload,
					func(ctx context.Context, experienceID string, p optionPayload) (string, error) {
						return gw.CreateID(ctx, gateway.Path("experiences", experienceID, "options"), p)
					},
					[]reconcile.FollowUp[Option]{setPaxTypes}, opts...),
				Update: reconcile.NewUpdatePerformer(Name, parent, toPayload,
					func(ctx context.Context, remoteID string, p optionPayload) error {
						return gw.Update(ctx, gateway.Path("options", remoteID), p)
					},
					[]reconcile.FollowUp[Option]{setPaxTypes}, opts...),
				Delete: reconcile.NewDeletePerformer(Name, func(ctx context.Context, remoteID string) error {
					return gw.Delete(ctx, gateway.Path("options", remoteID))
				}, opts...),
			}
		},
	}
}
