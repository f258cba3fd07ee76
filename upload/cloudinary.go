// Package upload pushes post images to Cloudinary and hands back the
// CDN URL stored on the post.
package upload

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary builds an uploader from a CLOUDINARY_URL-style
// connection string.
func NewCloudinary(url string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

func (u *Cloudinary) Upload(ctx context.Context, file io.Reader) (string, error) {
	params := uploader.UploadParams{
		Folder:         "socialfeed/posts",
		PublicID:       fmt.Sprintf("post-%d", time.Now().UnixNano()),
		Transformation: "c_limit,w_1080,h_1080,q_auto",
	}

	result, err := u.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return result.SecureURL, nil
}
