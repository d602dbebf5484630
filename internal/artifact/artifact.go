// Package artifact persists the churn classifier and its label encoding as
// one versioned bundle on disk.
package artifact

import (
	"bytes"
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/internal/logging"
	"github.com/vanshpreet5618/Helios/schema"
	"gopkg.in/yaml.v3"
)

// Bundle layout.
const (
	BundleName    = "churn_model"
	ManifestFile  = "manifest.yaml"
	ModelFile     = "model.json"
	EncodersFile  = "label_encoders.json"
	FormatVersion = 1
)

// Load errors callers can match with errors.Is.
var (
	ErrArtifactMissing = errors.New("model artifact missing")
	ErrArtifactCorrupt = errors.New("model artifact corrupt")
)

// Manifest describes a saved bundle.
type Manifest struct {
	FormatVersion      int               `yaml:"format_version"`
	BundleID           string            `yaml:"bundle_id"`
	ModelVersion       string            `yaml:"model_version"`
	CreatedAt          time.Time         `yaml:"created_at"`
	FeatureNames       []string          `yaml:"feature_names"`
	CategoricalColumns []string          `yaml:"categorical_columns"`
	Params             core.BoostParams  `yaml:"params"`
	Accuracy           *float64          `yaml:"accuracy,omitempty"`
	Checksums          map[string]string `yaml:"checksums"`
}

// Bundle is a loaded classifier with the encoding it was fitted on.
type Bundle struct {
	Manifest   Manifest
	Classifier *core.TrainedClassifier
	Encoding   schema.CategoryEncoding
}

// Repository saves and loads the bundle under a root directory.
type Repository struct {
	root   string
	now    func() time.Time
	logger *slog.Logger
}

// NewRepository returns a repository rooted at dir.
func NewRepository(dir string) *Repository {
	return &Repository{root: dir, now: time.Now, logger: logging.New("artifact")}
}

// Path returns the bundle directory.
func (r *Repository) Path() string {
	return filepath.Join(r.root, BundleName)
}

// Save writes the classifier and encoding as a new bundle. The report is
// optional and only contributes the held-out accuracy to the manifest.
//
// Files are written into a staging directory next to the bundle and swapped
// in with renames, so a failure at any point leaves the previous bundle as it was.
func (r *Repository) Save(clf *core.TrainedClassifier, encoding schema.CategoryEncoding, report *schema.ClassificationReport) (Manifest, error) {
	if clf == nil {
		return Manifest{}, errors.New("cannot save a nil classifier")
	}
	if err := clf.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("refusing to save invalid classifier: %w", err)
	}
	if err := checkEncoding(clf, encoding); err != nil {
		return Manifest{}, fmt.Errorf("refusing to save: %w", err)
	}

	modelData, err := json.Marshal(clf)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to encode classifier: %w", err)
	}
	encoderData, err := json.MarshalIndent(encoding, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to encode label encoders: %w", err)
	}

	modelSum := checksum(modelData)
	manifest := Manifest{
		FormatVersion:      FormatVersion,
		BundleID:           uuid.NewString(),
		ModelVersion:       modelSum[:12],
		CreatedAt:          r.now().UTC(),
		FeatureNames:       clf.FeatureNames,
		CategoricalColumns: clf.CategoricalFeatures,
		Params:             clf.Params,
		Checksums: map[string]string{
			ModelFile:    modelSum,
			EncodersFile: checksum(encoderData),
		},
	}
	if report != nil {
		acc := report.Accuracy
		manifest.Accuracy = &acc
	}
	manifestData, err := yaml.Marshal(&manifest)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := os.MkdirAll(r.root, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	staging, err := os.MkdirTemp(r.root, "."+BundleName+"-staging-")
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	// The manifest goes last so a staged bundle is never complete without payloads.
	files := []struct {
		name string
		data []byte
	}{
		{ModelFile, modelData},
		{EncodersFile, encoderData},
		{ManifestFile, manifestData},
	}
	for _, f := range files {
		if err := writeFileSync(filepath.Join(staging, f.name), f.data); err != nil {
			return Manifest{}, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}
	if err := syncDir(staging); err != nil {
		return Manifest{}, fmt.Errorf("failed to sync staging directory: %w", err)
	}

	if err := r.swap(staging); err != nil {
		return Manifest{}, err
	}
	r.logger.Info("saved model bundle", "path", r.Path(), "version", manifest.ModelVersion)
	return manifest, nil
}

// swap moves staging into place, keeping the old bundle aside until the new
// one is in.
func (r *Repository) swap(staging string) error {
	target := r.Path()
	var backup string
	if _, err := os.Stat(target); err == nil {
		backup = filepath.Join(r.root, fmt.Sprintf("%s%d", backupPrefix, r.now().UnixNano()))
		if err := os.Rename(target, backup); err != nil {
			return fmt.Errorf("failed to move previous bundle aside: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to inspect previous bundle: %w", err)
	}

	if err := os.Rename(staging, target); err != nil {
		if backup != "" {
			if rerr := os.Rename(backup, target); rerr != nil {
				r.logger.Error("failed to restore previous bundle", "backup", backup, "error", rerr)
			}
		}
		return fmt.Errorf("failed to install bundle: %w", err)
	}
	if err := syncDir(r.root); err != nil {
		r.logger.Warn("failed to sync artifact directory", "error", err)
	}
	for _, old := range r.backups() {
		if err := os.RemoveAll(old); err != nil {
			r.logger.Warn("failed to remove previous bundle", "path", old, "error", err)
		}
	}
	return nil
}

// backupPrefix names bundles moved aside by swap. The suffix is the move time
// in nanoseconds.
const backupPrefix = "." + BundleName + "-old-"

// backups lists bundles left aside by swap, newest first.
func (r *Repository) backups() []string {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil
	}
	type aside struct {
		path string
		at   int64
	}
	var found []aside
	for _, e := range entries {
		suffix, ok := strings.CutPrefix(e.Name(), backupPrefix)
		if !ok || !e.IsDir() {
			continue
		}
		at, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			continue
		}
		found = append(found, aside{path: filepath.Join(r.root, e.Name()), at: at})
	}
	slices.SortFunc(found, func(a, b aside) int { return cmp.Compare(b.at, a.at) })
	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths
}

// restoreBackup puts the newest moved-aside bundle back when the target is
// absent, which happens when a save stopped between its two renames.
func (r *Repository) restoreBackup() bool {
	backups := r.backups()
	if len(backups) == 0 {
		return false
	}
	if err := os.Rename(backups[0], r.Path()); err != nil {
		r.logger.Warn("failed to restore previous bundle", "backup", backups[0], "error", err)
		return false
	}
	r.logger.Warn("restored previous bundle after an interrupted save", "backup", backups[0])
	return true
}

// Load reads and verifies the bundle. A missing bundle is restored from the
// newest moved-aside copy when one exists.
func (r *Repository) Load() (*Bundle, error) {
	dir := r.Path()
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) && r.restoreBackup() {
		info, err = os.Stat(dir)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, dir)
		}
		return nil, fmt.Errorf("failed to stat bundle: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrArtifactCorrupt, dir)
	}

	manifestData, err := readMember(dir, ManifestFile)
	if err != nil {
		return nil, err
	}
	modelData, err := readMember(dir, ModelFile)
	if err != nil {
		return nil, err
	}
	encoderData, err := readMember(dir, EncodersFile)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := yaml.Unmarshal(manifestData, &manifest); err != nil {
		return nil, fmt.Errorf("%w: manifest: %v", ErrArtifactCorrupt, err)
	}
	if manifest.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrArtifactCorrupt, manifest.FormatVersion)
	}
	for name, data := range map[string][]byte{ModelFile: modelData, EncodersFile: encoderData} {
		if want := manifest.Checksums[name]; want != checksum(data) {
			return nil, fmt.Errorf("%w: checksum mismatch for %s", ErrArtifactCorrupt, name)
		}
	}

	var clf core.TrainedClassifier
	if err := decodeStrict(modelData, &clf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactCorrupt, ModelFile, err)
	}
	if err := clf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}

	var encoding schema.CategoryEncoding
	if err := decodeStrict(encoderData, &encoding); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactCorrupt, EncodersFile, err)
	}
	if err := checkEncoding(&clf, encoding); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}

	return &Bundle{Manifest: manifest, Classifier: &clf, Encoding: encoding}, nil
}

// checkEncoding verifies the encoding covers exactly the categorical features
// of the classifier and that labels are unique per column.
func checkEncoding(clf *core.TrainedClassifier, encoding schema.CategoryEncoding) error {
	want := slices.Sorted(slices.Values(clf.CategoricalFeatures))
	got := make([]string, 0, len(encoding))
	for col := range encoding {
		got = append(got, col)
	}
	slices.Sort(got)
	if !slices.Equal(want, got) {
		return fmt.Errorf("encoding columns %v do not match classifier categorical features %v", got, want)
	}
	for col, labels := range encoding {
		seen := make(map[string]struct{}, len(labels))
		for _, l := range labels {
			if _, dup := seen[l]; dup {
				return fmt.Errorf("column %s has duplicate label %q", col, l)
			}
			seen[l] = struct{}{}
		}
	}
	return nil
}

func readMember(dir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, name)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer func() { _ = d.Close() }()
	return d.Sync()
}
