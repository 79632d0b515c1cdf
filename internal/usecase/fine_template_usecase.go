package usecase

import (
	"context"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
)

func (u *Usecase) AddFineTemplate(ctx context.Context, id *auth.Identity, teamID domain.TeamID, tmpl domain.FineTemplate) (domain.FineTemplate, error) {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RoleFineTemplateManager); err != nil {
		return domain.FineTemplate{}, err
	}
	if err := validate(tmpl); err != nil {
		return domain.FineTemplate{}, err
	}
	_, err := u.Repo.GetFineTemplate(ctx, teamID, tmpl.ID)
	if err := absent("fine template "+string(tmpl.ID), err); err != nil {
		return domain.FineTemplate{}, err
	}
	if err := u.Repo.PutFineTemplate(ctx, teamID, tmpl); err != nil {
		return domain.FineTemplate{}, write("fine template", err)
	}
	return tmpl, nil
}

func (u *Usecase) UpdateFineTemplate(ctx context.Context, id *auth.Identity, teamID domain.TeamID, tmpl domain.FineTemplate) (domain.FineTemplate, error) {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RoleFineTemplateManager); err != nil {
		return domain.FineTemplate{}, err
	}
	if err := validate(tmpl); err != nil {
		return domain.FineTemplate{}, err
	}
	if _, err := u.Repo.GetFineTemplate(ctx, teamID, tmpl.ID); err != nil {
		return domain.FineTemplate{}, lookup("fine template "+string(tmpl.ID), err)
	}
	if err := u.Repo.PutFineTemplate(ctx, teamID, tmpl); err != nil {
		return domain.FineTemplate{}, write("fine template", err)
	}
	return tmpl, nil
}

func (u *Usecase) DeleteFineTemplate(ctx context.Context, id *auth.Identity, teamID domain.TeamID, tmplID domain.FineTemplateID) error {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RoleFineTemplateManager); err != nil {
		return err
	}
	if _, err := u.Repo.GetFineTemplate(ctx, teamID, tmplID); err != nil {
		return lookup("fine template "+string(tmplID), err)
	}
	return write("fine template", u.Repo.DeleteFineTemplate(ctx, teamID, tmplID))
}
