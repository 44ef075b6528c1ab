// Package printing 은 주문서 출력 화면을 헤드리스 브라우저로 PDF 로 만들고
// 스풀 폴더에 저장한 뒤 설정된 인쇄 명령을 실행합니다.
package printing

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Options 는 출력 설정입니다.
type Options struct {
	Enabled    bool
	BaseURL    string // 주문서 화면을 제공하는 서버
	SpoolDir   string
	Command    string // 예: "lp -d LABEL {file}". {file} 이 없으면 끝에 붙입니다.
	BrowserBin string
}

// Spooler 는 주문 ID 로 주문서를 출력합니다.
type Spooler struct {
	opts      Options
	renderPDF func(ctx context.Context, url string) ([]byte, error)
	now       func() time.Time
}

func NewSpooler(opts Options) *Spooler {
	s := &Spooler{opts: opts, now: time.Now}
	s.renderPDF = s.renderWithBrowser
	return s
}

// PrintURL 은 주문서 화면 주소입니다.
func (s *Spooler) PrintURL(orderID int) string {
	return fmt.Sprintf("%s/orders/%d/print", strings.TrimRight(s.opts.BaseURL, "/"), orderID)
}

// PrintOrder 는 주문서를 PDF 로 저장하고 인쇄 명령을 실행합니다.
// 출력이 꺼져 있으면 아무것도 하지 않고 빈 경로를 반환합니다.
func (s *Spooler) PrintOrder(ctx context.Context, orderID int) (string, error) {
	if !s.opts.Enabled {
		return "", nil
	}

	if err := os.MkdirAll(s.opts.SpoolDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create spool dir: %w", err)
	}

	url := s.PrintURL(orderID)
	log.Printf("INFO: rendering order sheet %s", url)
	data, err := s.renderPDF(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to render order sheet: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("rendered order sheet is empty")
	}

	name := fmt.Sprintf("order_%d_%s.pdf", orderID, s.now().Format("20060102150405"))
	path := filepath.Join(s.opts.SpoolDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	if s.opts.Command != "" {
		if err := runCommand(ctx, s.opts.Command, path); err != nil {
			return path, err
		}
	}
	log.Printf("INFO: order sheet spooled: %s", path)
	return path, nil
}

func (s *Spooler) renderWithBrowser(ctx context.Context, url string) ([]byte, error) {
	l := launcher.New().Headless(true).Leakless(false)
	if s.opts.BrowserBin != "" {
		l = l.Bin(s.opts.BrowserBin)
	}
	defer l.Cleanup()

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser launch failed: %w", err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("browser connect failed: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load %s: %w", url, err)
	}

	r, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: true})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return io.ReadAll(r)
}

// commandArgs 는 인쇄 명령 문자열을 인자 목록으로 나눕니다.
func commandArgs(command, file string) []string {
	fields := strings.Fields(command)
	replaced := false
	for i, f := range fields {
		if strings.Contains(f, "{file}") {
			fields[i] = strings.ReplaceAll(f, "{file}", file)
			replaced = true
		}
	}
	if !replaced {
		fields = append(fields, file)
	}
	return fields
}

func runCommand(ctx context.Context, command, file string) error {
	args := commandArgs(command, file)
	out, err := exec.CommandContext(ctx, args[0], args[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("print command %q failed: %w (%s)", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
