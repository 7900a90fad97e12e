package aggregator

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/Kenengmathias/Hunter/internal/models"
)

// Fingerprint identifies a posting across boards. The location is cut
// to its first 20 runes so suffix noise like postcodes does not split
// the same job into two.
func Fingerprint(job models.Job) string {
	location := strings.ToLower(strings.TrimSpace(job.Location))
	if runes := []rune(location); len(runes) > 20 {
		location = string(runes[:20])
	}

	key := strings.ToLower(strings.TrimSpace(job.Title)) + "|" +
		strings.ToLower(strings.TrimSpace(job.Company)) + "|" +
		location
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Dedupe keeps the first job seen for each fingerprint.
func Dedupe(jobs []models.Job) []models.Job {
	seen := make(map[string]struct{}, len(jobs))
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		key := Fingerprint(job)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, job)
	}
	return out
}
