package domain

import "fmt"

// Category is the geographic tag a listing is filed under.
type Category string

const (
	CategoryOdisha       Category = "odisha"
	CategoryBihar        Category = "bihar"
	CategoryUttarPradesh Category = "uttar_pradesh"
	CategoryMaharashtra  Category = "maharashtra"
	CategoryDelhi        Category = "delhi"
	CategoryAll          Category = "all"
)

// DefaultPartitionPrefix names job partitions as govt_jobs_<category>.
const DefaultPartitionPrefix = "govt_jobs"

// VideoPartition holds channel-feed records.
const VideoPartition = "govt_job_videos"

// PartitionName derives the partition (collection/table) for a category.
func PartitionName(prefix string, category Category) string {
	if prefix == "" {
		prefix = DefaultPartitionPrefix
	}
	if category == "" {
		category = CategoryAll
	}
	return fmt.Sprintf("%s_%s", prefix, category)
}
