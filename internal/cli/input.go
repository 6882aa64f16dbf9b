package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/timesheet/internal/contract"
	"github.com/spf13/pflag"
)

// inputFlags are shared by the commands that run the pipeline.
type inputFlags struct {
	areasPath string
	weekly    bool
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.areasPath, "areas", "", "Work-area CSV with Key, Name and Alias columns")
	fs.BoolVar(&f.weekly, "weekly", false, "Aggregate rows per user and work week")
}

// request reads the worklog and the optional work-area file.
func (f *inputFlags) request(worklogPath string) (contract.ConvertRequest, error) {
	text, err := readText(worklogPath)
	if err != nil {
		return contract.ConvertRequest{}, err
	}
	req := contract.NewConvertRequest(filepath.Base(worklogPath), text)
	req.Weekly = f.weekly

	if f.areasPath != "" {
		req.Areas, err = readText(f.areasPath)
		if err != nil {
			return contract.ConvertRequest{}, err
		}
	}
	return req, nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
