package process

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestReadPIDFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantPID int
		wantErr bool
	}{
		{
			name:    "valid pid",
			content: "1234",
			wantPID: 1234,
		},
		{
			name:    "trailing newline",
			content: "5678\n",
			wantPID: 5678,
		},
		{
			name:    "garbage",
			content: "not-a-pid",
			wantErr: true,
		},
		{
			name:    "zero pid",
			content: "0",
			wantErr: true,
		},
		{
			name:    "negative pid",
			content: "-5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".pid")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			pid, err := ReadPIDFile(path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ReadPIDFile() = %d, want error", pid)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadPIDFile() error = %v", err)
			}
			if pid != tt.wantPID {
				t.Errorf("ReadPIDFile() = %d, want %d", pid, tt.wantPID)
			}
		})
	}
}

func TestReadPIDFileMissing(t *testing.T) {
	_, err := ReadPIDFile(filepath.Join(t.TempDir(), "absent.pid"))
	if !os.IsNotExist(err) {
		t.Errorf("ReadPIDFile() on missing file = %v, want IsNotExist", err)
	}
}

func TestAlive(t *testing.T) {
	if !Alive(os.Getpid()) {
		t.Error("Alive(own pid) = false, want true")
	}
	if Alive(0) {
		t.Error("Alive(0) = true, want false")
	}
	if Alive(-1) {
		t.Error("Alive(-1) = true, want false")
	}
}

func TestAliveDeadProcess(t *testing.T) {
	cmd := exec.Command("true")
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}
	pid := cmd.Process.Pid
	cmd.Wait()

	if Alive(pid) {
		t.Errorf("Alive(%d) = true for exited process, want false", pid)
	}
}

func TestFindByNameSelf(t *testing.T) {
	// The test binary itself is always present in the process table.
	name := filepath.Base(os.Args[0])

	pid, err := FindByName(context.Background(), name)
	if err != nil {
		t.Fatalf("FindByName(%q) error = %v", name, err)
	}
	if pid <= 0 {
		t.Errorf("FindByName(%q) = %d, want positive pid", name, pid)
	}
}

func TestFindByNameNoMatch(t *testing.T) {
	_, err := FindByName(context.Background(), "definitely-not-a-real-process-name-xyzzy")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("FindByName() = %v, want ErrNoMatch", err)
	}
}
