package controllers

import (
	"context"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
)

type profileFinder interface {
	FindProfile(ctx context.Context, id uint) (*models.Profile, error)
}

type historyFinder interface {
	FindHistory(ctx context.Context, historyID uint) (*models.WatchHistory, error)
}

// authorizeProfile loads the profile fresh on every call and checks that it
// belongs to the authenticated user. A missing profile wins over a foreign one.
func authorizeProfile(ctx context.Context, profiles profileFinder, profileID uint) (*models.Profile, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := profiles.FindProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}
	if profile.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "profile does not belong to the authenticated user")
	}
	return profile, nil
}

// authorizeHistory resolves the history row first, then gates its profile.
func authorizeHistory(ctx context.Context, profiles profileFinder, history historyFinder, historyID uint) (*models.WatchHistory, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}
	entry, err := history.FindHistory(ctx, historyID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "history entry not found")
	}
	if _, err := authorizeProfile(ctx, profiles, entry.ProfileID); err != nil {
		return nil, err
	}
	return entry, nil
}
