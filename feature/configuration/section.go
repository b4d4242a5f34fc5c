package configuration

import (
	"context"

	"experience-manager/core/gateway"
	"experience-manager/core/reconcile"
	"experience-manager/core/sectionapi"
)

// Name is the section name and route segment.
const Name = "configuration"

// Blueprint describes the configuration section on top of gw.
func Blueprint(gw *gateway.Client) sectionapi.Blueprint[Setting] {
	return sectionapi.Blueprint[Setting]{
		Name: Name,
		Fetch: func(ctx context.Context, experienceID string) ([]Setting, error) {
			var dtos []settingDTO
			if err := gw.List(ctx, gateway.Path("experiences", experienceID, "configurations"), &dtos); err != nil {
				return nil, err
			}
			return fromDTOs(dtos), nil
		},
		Performers: func(parent reconcile.ParentFunc, opts ...reconcile.PerformerOption) sectionapi.Performers[Setting] {
			return sectionapi.Performers[Setting]{
				Create: reconcile.NewCreatePerformer(Name, parent, toPayload,
					func(ctx context.Context, experienceID string, p settingPayload) (string, error) {
						return gw.CreateID(ctx, gateway.Path("experiences", experienceID, "configurations"), p)
					}, nil, opts...),
				Update: reconcile.NewUpdatePerformer(Name, parent, toPayload,
					func(ctx context.Context, remoteID string, p settingPayload) error {
						return gw.Update(ctx, gateway.Path("configurations", remoteID), p)
					}, nil, opts...),
				Delete: reconcile.NewDeletePerformer(Name, func(ctx context.Context, remoteID string) error {
					return gw.Delete(ctx, gateway.Path("configurations", remoteID))
				}, opts...),
			}
		},
	}
}
