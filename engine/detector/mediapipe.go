package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"gocv.io/x/gocv"
)

// MediaPipeDetector implements Detector against a Python MediaPipe gesture
// recognizer running as a subprocess. Frames are JPEG-encoded and written
// length-prefixed to the service's stdin; results come back as one JSON line
// per frame.
type MediaPipeDetector struct {
	mu         sync.Mutex
	scriptPath string
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stdout     *bufio.Reader
	started    bool
}

var _ Detector = &MediaPipeDetector{}

// NewMediaPipeDetector creates a MediaPipe detector for the given service
// script. Start must be called before Detect; a Start failure is terminal
// for the session.
//
// Parameters:
//   - scriptPath: path to the MediaPipe service script
//
// Returns:
//   - *MediaPipeDetector: the newly created detector
func NewMediaPipeDetector(scriptPath string) *MediaPipeDetector {
	return &MediaPipeDetector{scriptPath: scriptPath}
}

// Start launches the Python service process.
//
// Returns:
//   - error: error if the script is missing or the process cannot start
func (d *MediaPipeDetector) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started {
		return nil
	}
	if _, err := os.Stat(d.scriptPath); err != nil {
		return fmt.Errorf("detector service script: %w", err)
	}

	cmd := exec.Command("python3", d.scriptPath)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start detector service: %w", err)
	}

	d.cmd = cmd
	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true
	return nil
}

// Detect encodes the frame as JPEG, ships it to the service, and parses the
// single-line JSON response. Returns nil when the service reports no hands.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) (*Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return nil, fmt.Errorf("detector not started")
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()
	data := buf.GetBytes()

	// Length-prefixed frame: 4 bytes big-endian, then the JPEG payload.
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	if _, err := d.stdin.Write(length[:]); err != nil {
		return nil, fmt.Errorf("write frame length: %w", err)
	}
	if _, err := d.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write frame: %w", err)
	}

	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read detection response: %w", err)
	}

	var result Result
	if err := json.Unmarshal([]byte(line), &result); err != nil {
		return nil, fmt.Errorf("parse detection response: %w", err)
	}
	if len(result.Landmarks) == 0 {
		return nil, nil
	}
	return &result, nil
}

// Close shuts down the service process. Safe to call without Start and
// safe to call twice.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return nil
	}
	d.started = false

	if d.stdin != nil {
		d.stdin.Close()
		d.stdin = nil
	}
	err := d.cmd.Wait()
	d.cmd = nil
	d.stdout = nil
	return err
}
