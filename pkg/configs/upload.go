package configs

import "github.com/spf13/viper"

const (
	// DefaultMaxDocumentBytes is the per-file ceiling for regular documents (100 MiB).
	DefaultMaxDocumentBytes = 104857600
	// DefaultMaxBundleBytes is the per-file ceiling for compressed bundles (500 MiB).
	DefaultMaxBundleBytes = 524288000

	DefaultMinYear = 2020
	DefaultMaxYear = 2030
)

// UploadConfig holds the upload policy: size ceilings, permitted extensions
// and the accepted year range for classification keys.
type UploadConfig struct {
	MaxDocumentBytes int64 `mapstructure:"max_document_bytes" rule:"min=1"`
	MaxBundleBytes   int64 `mapstructure:"max_bundle_bytes"   rule:"min=1"`
	// DocumentExtensions and BundleExtensions are lowercased, without dots.
	DocumentExtensions []string `mapstructure:"document_extensions"`
	BundleExtensions   []string `mapstructure:"bundle_extensions"`
	MinYear            int      `mapstructure:"min_year" rule:"min=1900"`
	MaxYear            int      `mapstructure:"max_year" rule:"min=1900"`
}

func (c *UploadConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("upload.max_document_bytes", DefaultMaxDocumentBytes)
	v.SetDefault("upload.max_bundle_bytes", DefaultMaxBundleBytes)
	v.SetDefault("upload.document_extensions", []string{"pdf", "doc", "docx", "xls", "xlsx"})
	v.SetDefault("upload.bundle_extensions", []string{"zip", "rar", "7z"})
	v.SetDefault("upload.min_year", DefaultMinYear)
	v.SetDefault("upload.max_year", DefaultMaxYear)
}
