package catalog

// File is the on-disk catalog schema loaded from YAML or JSON.
type File struct {
	Version   int            `json:"version" yaml:"version"`
	Questions []FileQuestion `json:"questions" yaml:"questions"`
}

// FileQuestion is one question entry in a catalog file.
type FileQuestion struct {
	ID           int      `json:"id" yaml:"id"`
	Body         string   `json:"body" yaml:"body"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correct_index" yaml:"correct_index"`
}
