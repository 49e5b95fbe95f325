package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/waitlight/vod-pipeline/internal/models"
	"github.com/waitlight/vod-pipeline/internal/videos"
	"github.com/waitlight/vod-pipeline/pkg/utils"
)

type videoRepo struct {
	db *sqlx.DB
}

func NewVideoRepo(db *sqlx.DB) videos.Repository {
	return &videoRepo{
		db: db,
	}
}

func (v *videoRepo) CreateVideo(ctx context.Context, video *models.VideoRecord) (*models.VideoRecord, error) {
	created := &models.VideoRecord{}
	if err := v.db.QueryRowxContext(
		ctx,
		createVideoQuery,
		video.Title,
		video.OriginalFilename,
		video.SizeBytes,
		video.Status,
		video.ErrorCode,
		video.ErrorMessage,
		video.StoragePath,
		video.ProxyPath,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "videoRepo.CreateVideo.StructScan")
	}
	return created, nil
}

func (v *videoRepo) GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.VideoRecord, error) {
	video := &models.VideoRecord{}
	if err := v.db.QueryRowxContext(
		ctx,
		getVideoByIDQuery,
		videoID,
	).StructScan(video); err != nil {
		return nil, errors.Wrap(err, "videoRepo.GetVideoByID.StructScan")
	}
	return video, nil
}

func (v *videoRepo) UpdateVideo(ctx context.Context, video *models.VideoRecord) (*models.VideoRecord, error) {
	updated := &models.VideoRecord{}
	if err := v.db.QueryRowxContext(
		ctx,
		updateVideoQuery,
		video.Status,
		video.ErrorCode,
		video.ErrorMessage,
		video.StoragePath,
		video.ProxyPath,
		video.VideoID,
	).StructScan(updated); err != nil {
		return nil, errors.Wrap(err, "videoRepo.UpdateVideo.StructScan")
	}
	return updated, nil
}

func (v *videoRepo) GetVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error) {
	var totalCount int
	if err := v.db.GetContext(ctx, &totalCount, getTotalVideosQuery); err != nil {
		return nil, errors.Wrap(err, "videoRepo.GetVideos.GetContext")
	}
	if totalCount == 0 {
		return &models.VideoList{
			Videos:     make([]*models.VideoListItem, 0),
			TotalCount: 0,
			Page:       pq.GetPage(),
			PageSize:   pq.GetSize(),
			HasMore:    false,
		}, nil
	}

	rows, err := v.db.QueryxContext(
		ctx,
		getVideosQuery,
		pq.GetOffset(),
		pq.GetLimit(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "videoRepo.GetVideos.QueryxContext")
	}
	defer rows.Close()

	items := make([]*models.VideoListItem, 0, pq.GetSize())
	for rows.Next() {
		var video models.VideoRecord
		if err = rows.StructScan(&video); err != nil {
			return nil, errors.Wrap(err, "videoRepo.GetVideos.StructScan")
		}
		items = append(items, video.ToListItem())
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "videoRepo.GetVideos.rows.Err")
	}
	return &models.VideoList{
		Videos:     items,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (v *videoRepo) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	res, err := v.db.ExecContext(ctx, deleteVideoQuery, videoID)
	if err != nil {
		return errors.Wrap(err, "videoRepo.DeleteVideo.ExecContext")
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (v *videoRepo) CreateHlsPackage(ctx context.Context, pkg *models.HlsPackage) (*models.HlsPackage, error) {
	created := &models.HlsPackage{}
	if err := v.db.QueryRowxContext(
		ctx,
		createHlsPackageQuery,
		pkg.VideoID,
		pkg.ManifestPath,
		pkg.SegmentDir,
		pkg.SegmentPattern,
		pkg.SegmentDurationSeconds,
		pkg.SegmentCount,
		pkg.TotalDurationSeconds,
		pkg.GeneratedAt,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "videoRepo.CreateHlsPackage.StructScan")
	}
	return created, nil
}

func (v *videoRepo) GetHlsPackage(ctx context.Context, videoID uuid.UUID) (*models.HlsPackage, error) {
	pkg := &models.HlsPackage{}
	if err := v.db.QueryRowxContext(
		ctx,
		getHlsPackageQuery,
		videoID,
	).StructScan(pkg); err != nil {
		return nil, errors.Wrap(err, "videoRepo.GetHlsPackage.StructScan")
	}
	return pkg, nil
}
