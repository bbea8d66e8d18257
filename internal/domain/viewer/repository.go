package viewer

import "context"

// PreferenceRepository reads viewer-scoped ranking inputs. All lookups
// resolve to safe empty defaults for viewers with no stored rows.
type PreferenceRepository interface {
	// GetPrivacySettings returns the viewer's toggles, or
	// ErrSettingsNotFound when no row exists.
	GetPrivacySettings(ctx context.Context, userID string) (*PrivacySettings, error)

	// ListCategoryInteractions returns the viewer's category engagement,
	// highest preference score first.
	ListCategoryInteractions(ctx context.Context, userID string, limit int) ([]CategoryInteraction, error)

	// Signal preference id sets. Each defaults to empty.
	ListHiddenSignalIDs(ctx context.Context, userID string) ([]string, error)
	ListPinnedSignalIDs(ctx context.Context, userID string) ([]string, error)
	ListUnimportantSignalIDs(ctx context.Context, userID string) ([]string, error)
}
