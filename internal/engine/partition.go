package engine

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/hollis/taxease/internal/model"
)

// Batch is an incoming file batch split into rule-definition files and
// receipt files. Order within each partition preserves the original batch
// order, which fixes the downstream processing order.
type Batch struct {
	RuleFiles []model.File
	Receipts  []model.File
}

// Partition splits a file batch into rule files (.json extension or a
// declared JSON media type) and receipt files (everything else). Receipt
// content is not validated here; the classification collaborator discovers
// invalid receipts later.
func Partition(files []model.File) Batch {
	var batch Batch
	for _, f := range files {
		if isRuleFile(f) {
			batch.RuleFiles = append(batch.RuleFiles, f)
		} else {
			batch.Receipts = append(batch.Receipts, f)
		}
	}
	return batch
}

func isRuleFile(f model.File) bool {
	if strings.EqualFold(filepath.Ext(f.Name), ".json") {
		return true
	}
	if f.ContentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(f.ContentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
