// order-entry 는 터미널에서 도수표로 판매전표를 입력하는 화면입니다.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"lensorder/api"
	"lensorder/config"
	"lensorder/entry"
	"lensorder/printing"
	"lensorder/sound"
	"lensorder/tui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "설정 파일 경로")
	logPath := flag.String("log", "order-entry.log", "로그 파일 경로")
	flag.Parse()

	// 화면을 쓰는 동안에는 표준 출력에 로그를 남길 수 없습니다.
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	config.SetPath(*configPath)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
		cfg = config.GetConfig()
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout())
	spooler := printing.NewSpooler(printing.Options{
		Enabled:    cfg.PrintEnabled,
		BaseURL:    client.BaseURL(),
		SpoolDir:   cfg.PrintSpoolDir,
		Command:    cfg.PrintCommand,
		BrowserBin: cfg.BrowserBin,
	})

	player := sound.NewPlayer(cfg.SoundEnabled)
	if err := player.Initialize(); err != nil {
		log.Printf("WARN: sound disabled: %v", err)
	}
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to init screen: %v", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app *tui.App
	session := entry.NewSession(ctx, client,
		entry.WithPrinter(spooler),
		entry.WithNotifier(player),
		entry.WithStoreLimit(cfg.StoreLimit),
		entry.WithOnChange(func() { app.Refresh() }),
	)
	app = tui.New(screen, session)
	session.Start()

	log.Printf("INFO: order entry started (api=%s)", client.BaseURL())
	if err := app.Run(ctx); err != nil {
		log.Printf("ERROR: %v", err)
	}
	stop()
	session.Wait()
	log.Println("INFO: order entry stopped")
}
