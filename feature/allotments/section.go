package allotments

import (
	"context"
	"errors"

	"experience-manager/core/gateway"
	"experience-manager/core/reconcile"
	"experience-manager/core/sectionapi"

	"github.com/google/uuid"
)

// Name is the section name and route segment.
const Name = "allotments"

// NewID returns a fresh client-chosen allotment id.
func NewID() reconcile.EntityID {
	return reconcile.PersistedID(uuid.NewString())
}

// Blueprint describes the allotments section on top of gw.
func Blueprint(gw *gateway.Client) sectionapi.Blueprint[Allotment] {
	return sectionapi.Blueprint[Allotment]{
		Name:   Name,
		Differ: reconcile.Differ[Allotment]{Policy: reconcile.NewByAbsence},
		NewID:  NewID,
		Fetch: func(ctx context.Context, experienceID string) ([]Allotment, error) {
			var dtos []allotmentDTO
			if err := gw.List(ctx, gateway.Path("experiences", experienceID, "allotments"), &dtos); err != nil {
				return nil, err
			}
			return fromDTOs(dtos), nil
		},
		Performers: func(parent reconcile.ParentFunc, opts ...reconcile.PerformerOption) sectionapi.Performers[Allotment] {
			return sectionapi.Performers[Allotment]{
				Create: reconcile.NewCreatePerformer(Name, parent, toDTO,
					func(ctx context.Context, experienceID string, dto allotmentDTO) (string, error) {
						id, err := gw.CreateID(ctx, gateway.Path("experiences", experienceID, "allotments"), dto)
						// The service may answer an accepted client id with an empty body.
						if errors.Is(err, gateway.ErrNoLocation) {
							return dto.ID, nil
						}
						return id, err
					}, nil, opts...),
				Update: reconcile.NewUpdatePerformer(Name, parent, toDTO,
					func(ctx context.Context, remoteID string, dto allotmentDTO) error {
						return gw.Update(ctx, gateway.Path("allotments", remoteID), dto)
					}, nil, opts...),
				Delete: reconcile.NewDeletePerformer(Name, func(ctx context.Context, remoteID string) error {
					return gw.Delete(ctx, gateway.Path("allotments", remoteID))
				}, opts...),
			}
		},
	}
}
