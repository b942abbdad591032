// internal/app/features/users/resource.go
package users

import (
	"context"
	"errors"

	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	userstore "github.com/ohenegyan12/church-management/internal/app/store/users"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const Base = "/users"

var statuses = []string{models.StatusActive, models.StatusInactive}

var errDuplicateEmail = errors.New("A user with that email already exists.")

// Resource manages console users. Role user counts follow every create,
// role change and delete.
func Resource(set *collections.Set, store *userstore.Store, logger *zap.Logger) *crud.Resource[models.User] {
	title := func(u *models.User) string { return u.Name }
	activity := shared.Activity(set, logger, "user", "User", title)

	role := crud.StringField("role", "Role", crud.Select, "required",
		func(u *models.User) *string { return &u.Role })
	role.OptionsFrom = store.Roles

	return &crud.Resource[models.User]{
		Base:     Base,
		Singular: "User",
		Plural:   "Users",
		Subtitle: "Manage system users and their access permissions",
		Store:    set.Users,
		Fields: []crud.Field[models.User]{
			crud.StringField("name", "Full Name", crud.Text, "required,max=200",
				func(u *models.User) *string { return &u.Name }),
			crud.StringField("email", "Email", crud.Email, "required,email",
				func(u *models.User) *string { return &u.Email }),
			role,
			crud.SelectField("status", "Status", "required", statuses,
				func(u *models.User) *string { return &u.Status }),
		},
		Columns: []crud.Column[models.User]{
			{Label: "Name", Value: title, Primary: true},
			{Label: "Email", Value: func(u *models.User) string { return u.Email }},
			{Label: "Role", Value: func(u *models.User) string { return u.Role }},
			{Label: "Last Active", Value: func(u *models.User) string { return u.LastActive }},
			{Label: "Status", Value: func(u *models.User) string { return u.Status }, Badge: true},
		},
		Title: title,
		Prepare: func(ctx context.Context, u *models.User, isNew bool) error {
			taken, err := store.EmailTaken(ctx, u.Email, u.ID)
			if err != nil {
				return err
			}
			if taken {
				return errDuplicateEmail
			}
			if isNew {
				u.LastActive = "Just now"
				return nil
			}
			old, err := set.Users.Get(ctx, u.ID)
			if err != nil {
				return err
			}
			return store.Reassign(ctx, old.Role, u.Role)
		},
		OnChange: func(ctx context.Context, action string, u models.User) {
			var err error
			switch action {
			case "created":
				err = store.Reassign(ctx, "", u.Role)
			case "deleted":
				err = store.Reassign(ctx, u.Role, "")
			}
			if err != nil {
				logger.Warn("role count not updated", zap.String("role", u.Role), zap.Error(err))
			}
			activity(ctx, action, u)
		},
	}
}
