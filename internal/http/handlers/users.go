package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"communityaid/internal/domain"
	"communityaid/internal/policy"
	"communityaid/internal/resource"
)

// maxPhotoBytes bounds profile photo uploads.
const maxPhotoBytes = 5 << 20

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func userFilter(r *http.Request) (domain.Filter, error) {
	return domain.Filter{Query: strings.TrimSpace(r.URL.Query().Get("q"))}, nil
}

func (a *App) ListUsers(w http.ResponseWriter, r *http.Request) {
	list(a, w, r, a.UserAccounts, userFilter, a.userView)
}

func (a *App) GetUser(w http.ResponseWriter, r *http.Request) {
	retrieve(a, w, r, a.UserAccounts, a.userView)
}

func (a *App) CreateUser(w http.ResponseWriter, r *http.Request) {
	create[domain.User, resource.UserPatch](a, w, r, a.UserAccounts, a.userView)
}

func (a *App) DeleteUser(w http.ResponseWriter, r *http.Request) {
	remove(a, w, r, a.UserAccounts)
}

// UpdateUser applies a profile patch. Changing is_staff additionally needs
// the promote permission.
func (a *App) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := a.actor(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var patch resource.UserPatch
	if err := a.decode(w, r, &patch); err != nil {
		a.fail(w, r, err)
		return
	}
	if patch.IsStaff != nil {
		target, err := a.UserAccounts.Retrieve(r.Context(), actor, id)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		if *patch.IsStaff != target.IsStaff {
			if err := policy.Check(actor, policy.KindUser, policy.OpPromote, *target); err != nil {
				a.fail(w, r, err)
				return
			}
		}
	}
	user, err := a.UserAccounts.Update(r.Context(), actor, id, patch)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, a.userView(actor, *user))
}

// UploadPhoto stores a multipart "photo" field as the user's profile photo.
func (a *App) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	actor, err := a.actor(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	target, err := a.UserAccounts.Retrieve(r.Context(), actor, id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := policy.Check(actor, policy.KindUser, policy.OpUpdate, *target); err != nil {
		a.fail(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes+1<<10)
	file, _, err := r.FormFile("photo")
	if err != nil {
		a.fail(w, r, domain.Invalid("photo", "multipart field \"photo\" is required"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		a.fail(w, r, domain.Invalid("photo", "could not read upload"))
		return
	}
	if len(data) == 0 || len(data) > maxPhotoBytes {
		a.fail(w, r, domain.Invalid("photo", "photo must be between 1 byte and 5 MiB"))
		return
	}
	ext, ok := photoExtensions[http.DetectContentType(data)]
	if !ok {
		a.fail(w, r, domain.Invalid("photo", "photo must be a JPEG, PNG, GIF or WebP image"))
		return
	}

	key, err := a.Media.Write(r.Context(), fmt.Sprintf("photos/%d/%s%s", target.ID, uuid.NewString(), ext), data)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Users.SetProfilePhoto(r.Context(), target.ID, key); err != nil {
		_ = a.Media.Remove(key)
		a.fail(w, r, err)
		return
	}
	if old := target.ProfilePhoto; old != "" && old != key {
		if err := a.Media.Remove(old); err != nil {
			a.Logger.Warn().Err(err).Str("key", old).Msg("remove previous photo failed")
		}
	}
	target.ProfilePhoto = key
	a.json(w, http.StatusOK, a.userView(actor, *target))
}
