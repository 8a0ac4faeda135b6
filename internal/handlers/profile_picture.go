package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

const (
	profilePictureDir = "profile-pictures"
	maxPictureSize    = 5 << 20
	uploadURLPrefix   = "/uploads/"
)

var allowedPictureExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// UploadProfilePicture stores a new picture for the caller and replaces the
// previous one. The new file is removed again on any downstream failure so
// no orphaned uploads accumulate; the old picture is only deleted once the
// profile points at the new one.
func UploadProfilePicture(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users/me/profile-picture"
		defer handlePanic(c, route)

		actor, ok := requireActor(c, route)
		if !ok {
			return
		}

		file, err := c.FormFile("profilePicture")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "No file uploaded")
			return
		}

		storedPath, err := savePicture(file, uploadDir)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		fileURL := uploadURLPrefix + storedPath

		cleanupNewFile := func() {
			if err := safeDeleteUpload(uploadDir, fileURL); err != nil {
				log.Println("[UPLOAD] [ERROR] cleanup of new upload failed:", err)
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": actor.UserID}).Decode(&user); err != nil {
			cleanupNewFile()
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "User not found")
				return
			}
			log.Println("[UPLOAD] [ERROR] user lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to upload profile picture")
			return
		}

		_, err = db.Collection("users").UpdateByID(ctx, actor.UserID, bson.M{
			"$set": bson.M{"profilePicture": fileURL},
		})
		if err != nil {
			cleanupNewFile()
			log.Println("[UPLOAD] [ERROR] profile update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to upload profile picture")
			return
		}

		// Old picture goes last, after the profile points at the new one.
		// The reverse order could lose both files on a crash in between.
		if user.ProfilePicture != "" {
			if err := safeDeleteUpload(uploadDir, user.ProfilePicture); err != nil {
				log.Println("[UPLOAD] [ERROR] old picture delete failed:", err)
			}
		}

		log.Println("[UPLOAD] [INFO] profile picture updated:", fileURL)
		c.JSON(http.StatusOK, gin.H{
			"message":        "Profile picture uploaded successfully",
			"profilePicture": fileURL,
		})
	}
}

func savePicture(file *multipart.FileHeader, uploadDir string) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedPictureExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxPictureSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}

	filename := uuid.NewString() + extension

	dir := filepath.Join(uploadDir, profilePictureDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] savePicture: failed to create directory %s: %v", dir, err)
		return "", fmt.Errorf("failed to store file")
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] savePicture: failed to create file %s: %v", fullPath, err)
		return "", fmt.Errorf("failed to store file")
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] savePicture: failed to open upload %s: %v", file.Filename, err)
		removePartialFile(fullPath)
		return "", fmt.Errorf("failed to store file")
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] savePicture: failed to save file %s: %v", fullPath, err)
		removePartialFile(fullPath)
		return "", fmt.Errorf("failed to store file")
	}

	return path.Join(profilePictureDir, filename), nil
}

// removePartialFile deletes a destination file after a failed write so no
// half-written upload stays behind.
func removePartialFile(fullPath string) {
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		log.Printf("[UPLOAD] savePicture: failed to remove partial file %s: %v", fullPath, err)
	}
}

// safeDeleteUpload removes a stored picture given its public URL. It only
// ever deletes inside the profile-pictures subtree of uploadDir, whatever
// the stored value claims.
func safeDeleteUpload(uploadDir, fileURL string) error {
	trimmed := strings.TrimSpace(fileURL)
	if trimmed == "" {
		return nil
	}

	trimmed = strings.TrimPrefix(trimmed, uploadURLPrefix)
	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")

	if !strings.HasPrefix(cleanRel, profilePictureDir+"/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", fileURL)
	}

	cleanBase := filepath.Clean(uploadDir)
	targetPath := filepath.Join(cleanBase, filepath.FromSlash(cleanRel))
	cleanTarget := filepath.Clean(targetPath)
	if cleanTarget != cleanBase && !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside upload root: %s", fileURL)
	}

	if err := os.Remove(cleanTarget); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return nil
}
