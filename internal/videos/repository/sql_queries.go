package repository

const (
	createVideoQuery = `INSERT INTO t_videos (title, original_filename, size_bytes, status, error_code, error_message, storage_path, proxy_path)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING *`
	getVideoByIDQuery = `SELECT video_id, title, original_filename, size_bytes, status, error_code, error_message, storage_path, proxy_path, created_at, updated_at
					FROM t_videos WHERE video_id = $1`
	updateVideoQuery = `UPDATE t_videos
					SET status = $1,
					    error_code = $2,
					    error_message = $3,
					    storage_path = $4,
					    proxy_path = $5,
					    updated_at = NOW()
					WHERE video_id = $6 RETURNING *`
	getVideosQuery = `SELECT video_id, title, original_filename, size_bytes, status, error_code, error_message, storage_path, proxy_path, created_at, updated_at
					FROM t_videos ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	getTotalVideosQuery = `SELECT COUNT(video_id) FROM t_videos`
	deleteVideoQuery    = `DELETE FROM t_videos WHERE video_id = $1`

	createHlsPackageQuery = `INSERT INTO t_hls_packages (video_id, manifest_path, segment_dir, segment_pattern, segment_duration_seconds, segment_count, total_duration_seconds, generated_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING *`
	// t_hls_packages rows are removed by the FK cascade when the owning
	// t_videos row is deleted.
	getHlsPackageQuery = `SELECT video_id, manifest_path, segment_dir, segment_pattern, segment_duration_seconds, segment_count, total_duration_seconds, generated_at
					FROM t_hls_packages WHERE video_id = $1`
)
