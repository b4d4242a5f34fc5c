package pricing

import (
	"context"

	"experience-manager/core/gateway"
	"experience-manager/core/reconcile"
	"experience-manager/core/sectionapi"
)

// Name is the section name and route segment.
const Name = "pricing"

// Blueprint describes the internal pricing section on top of gw.
func Blueprint(gw *gateway.Client) sectionapi.Blueprint[Price] {
	return sectionapi.Blueprint[Price]{
		Name: Name,
		Fetch: func(ctx context.Context, experienceID string) ([]Price, error) {
			var dtos []priceDTO
			if err := gw.List(ctx, gateway.Path("experiences", experienceID, "prices"), &dtos); err != nil {
				return nil, err
			}
			return fromDTOs(dtos), nil
		},
		Performers: func(parent reconcile.ParentFunc, opts ...reconcile.PerformerOption) sectionapi.Performers[Price] {
			// Rows are validated by toPayload before any call is made.
			setRows := func(ctx context.Context, remoteID string, p Price) error {
				rows, err := toRows(p)
				if err != nil {
					return err
				}
				return gw.Update(ctx, gateway.Path("prices", remoteID, "rows"), rows)
			}
			follow := []reconcile.FollowUp[Price]{setRows}

			return sectionapi.Performers[Price]{
				Create: reconcile.NewCreatePerformer(Name, parent, toPayload,
					func(ctx context.Context, experienceID string, p pricePayload) (string, error) {
						return gw.CreateID(ctx, gateway.Path("experiences", experienceID, "prices"), p)
					}, follow, opts...),
				Update: reconcile.NewUpdatePerformer(Name, parent, toPayload,
					func(ctx context.Context, remoteID string, p pricePayload) error {
						return gw.Update(ctx, gateway.Path("prices", remoteID), p)
					}, follow, opts...),
				Delete: reconcile.NewDeletePerformer(Name, func(ctx context.Context, remoteID string) error {
					return gw.Delete(ctx, gateway.Path("prices", remoteID))
				}, opts...),
			}
		},
	}
}
