package auth

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"tabi/db"
	"tabi/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const avatarDir = "./static/userpic"

func processAvatarUpload(r *http.Request, userID string) (string, error) {
	file, _, err := r.FormFile("avatar")
	if err != nil {
		return "", fmt.Errorf("failed to read avatar file: %w", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if err := utils.EnsureDir(avatarDir); err != nil {
		return "", fmt.Errorf("failed to create avatar directory: %w", err)
	}

	// square crop keeps faces centered regardless of the source ratio
	thumb := imaging.Fill(img, 128, 128, imaging.Center, imaging.Lanczos)
	outputPath := filepath.Join(avatarDir, userID+".jpg")
	if err := imaging.Save(thumb, outputPath); err != nil {
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}

	return "/userpic/" + userID + ".jpg", nil
}

// POST /api/auth/avatar
func UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	avatarPath, err := processAvatarUpload(r, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if db.Available() {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		_, err = db.UserCollection.UpdateOne(ctx,
			bson.M{"userid": userID},
			bson.M{"$set": bson.M{"avatar": avatarPath, "updated_at": time.Now()}},
		)
		if err != nil {
			http.Error(w, "Failed to update profile", http.StatusInternalServerError)
			return
		}
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"avatar": avatarPath}, "Avatar updated", nil)
}
