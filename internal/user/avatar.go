package user

import (
	"fmt"
	"math/rand"

	"gather/config"
	"gather/internal/database"
)

const (
	boyAvatarCount  = 5
	girlAvatarCount = 5
)

// RandomAvatarURL picks a stock avatar matching the gender, falling back to
// the neutral default.
func RandomAvatarURL(cfg *config.Config, gender *database.Gender) string {
	if gender != nil {
		switch *gender {
		case database.GenderMale:
			return cfg.AssetURL(fmt.Sprintf("profile/boy_%d.png", rand.Intn(boyAvatarCount)+1))
		case database.GenderFemale:
			return cfg.AssetURL(fmt.Sprintf("profile/girl_%d.png", rand.Intn(girlAvatarCount)+1))
		}
	}
	return cfg.AssetURL("profile/default.jpg")
}
