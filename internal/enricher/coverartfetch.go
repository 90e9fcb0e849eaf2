package enricher

import (
	"context"
	"errors"
	"net/url"
	"path"

	"github.com/janboddez/scrobbble-addon/internal/listens"
	"github.com/janboddez/scrobbble-addon/pkg/coverart"
)

// FetchCoverArt locates front-cover art for a release and stores it in
// the art cache under the content hash.
//
// The operation is idempotent: any existing file for the hash
// short-circuits before network work. A release without art falls back
// to its release group. Running with listenID zero populates the shared
// cache without touching any listen record. All failures end the
// attempt quietly; a listen without cover art is acceptable.
func (e *Enricher) FetchCoverArt(ctx context.Context, albumMBID, hash string, listenID int64) {
	e.logger.Info().
		Str("album_mbid", albumMBID).
		Msg("Trying to fetch cover art")

	if albumMBID == "" {
		e.logger.Warn().Msg("Missing album MBID, quitting")
		return
	}

	if existing := e.art.FindByHash(hash); existing != "" {
		e.logger.Info().Str("path", existing).Msg("Cover art already exists")
		return
	}

	front := e.findFrontImage(ctx, albumMBID)
	if front == nil {
		return
	}

	imageURL := front.BestURL()
	if imageURL == "" {
		e.logger.Info().Msg("Front image has no usable rendition")
		return
	}

	filename := hash + urlExtension(imageURL)

	e.logger.Info().Str("url", imageURL).Msg("Attempting to download cover art")

	ref := e.art.StoreImage(ctx, imageURL, filename)
	if ref == "" {
		e.logger.Warn().Str("url", imageURL).Msg("Could not download cover art")
		return
	}

	if listenID != 0 {
		if err := e.store.SetMeta(ctx, listenID, listens.FieldCoverArt, ref); err != nil {
			e.logger.Error().Err(err).Int64("listen_id", listenID).Msg("Failed to persist cover art reference")
		}
	}
}

// findFrontImage returns the first front-cover image for a release,
// consulting the release's parent release group when the release itself
// has none. Returns nil when no front cover can be found anywhere.
func (e *Enricher) findFrontImage(ctx context.Context, albumMBID string) *coverart.Image {
	images, err := e.caa.ReleaseImages(ctx, albumMBID)
	if err != nil && !errors.Is(err, coverart.ErrNotFound) {
		e.logger.Warn().Err(err).Str("album_mbid", albumMBID).Msg("Cover art lookup failed")
		// Fall through to the release group; the archive regularly
		// holds group art even when the release query errors out.
	}

	if front := firstFront(images); front != nil {
		return front
	}

	e.logger.Info().Msg("No cover art for release, trying the release group")

	group, err := e.mb.GetReleaseGroup(ctx, albumMBID)
	if err != nil {
		e.logger.Warn().Err(err).Str("album_mbid", albumMBID).Msg("Release group lookup failed")
		return nil
	}

	images, err = e.caa.ReleaseGroupImages(ctx, group.ID)
	if err != nil {
		if errors.Is(err, coverart.ErrNotFound) {
			e.logger.Info().Msg("Could not find cover art, stopping here")
		} else {
			e.logger.Warn().Err(err).Str("group_mbid", group.ID).Msg("Release group art lookup failed")
		}
		return nil
	}

	if front := firstFront(images); front != nil {
		return front
	}

	e.logger.Info().Msg("Could not find cover art, stopping here")
	return nil
}

// firstFront returns the first image classified as a front cover. No
// attempt is made to rank multiple fronts.
func firstFront(images []coverart.Image) *coverart.Image {
	for i := range images {
		if images[i].IsFront() {
			return &images[i]
		}
	}
	return nil
}

// urlExtension extracts the file extension from an image URL, or ""
// when the URL path carries none.
func urlExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return path.Ext(rawURL)
	}
	return path.Ext(u.Path)
}
