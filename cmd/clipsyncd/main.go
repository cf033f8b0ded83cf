// cmd/clipsyncd is the daemon entrypoint: it wires Store, Replicator,
// Peer HTTP surface and Local command surface together, the way the
// reference distributed-kvstore codebase's cmd/server/main.go wires
// store, cluster and api together -- entirely flag-driven, no config
// file or env var reading. clipsyncctl start launches this binary
// detached; this binary itself records its own PID and redirects its own
// stdout/stderr to the log file regardless of how it was launched.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clipsync/internal/clipboard"
	"clipsync/internal/clock"
	"clipsync/internal/daemonctl"
	"clipsync/internal/discovery"
	"clipsync/internal/fileupload"
	"clipsync/internal/localsock"
	"clipsync/internal/peerhttp"
	"clipsync/internal/replicator"
	"clipsync/internal/store"
)

func main() {
	httpAddr := flag.String("http-addr", ":3000", "address the peer HTTP surface listens on")
	socketPath := flag.String("socket-path", "/tmp/clipsyncd.sock", "unix socket for the local command surface")
	dbPath := flag.String("db-path", "/tmp/clipsyncd.db", "sqlite database path")
	pidFile := flag.String("pid-file", "/tmp/clipsyncd.pid", "pid file path")
	logFile := flag.String("log-file", "/tmp/clipsyncd.log", "log file path")
	hostIDFile := flag.String("host-id", "/tmp/clipsyncd.host-id", "file holding this host's stable id")
	peersFile := flag.String("peers-file", "/tmp/clipsyncd.peers.json", "static JSON peer list")
	fanout := flag.Int("fanout", replicator.DefaultFanout, "gossip fan-out")
	antiEntropyInterval := flag.Duration("anti-entropy-interval", replicator.DefaultAntiEntropyInterval, "anti-entropy sweep period")
	flag.Parse()

	if err := daemonctl.RedirectLogs(*logFile); err != nil {
		log.Fatalf("redirect logs: %v", err)
	}
	if err := daemonctl.WritePID(*pidFile); err != nil {
		log.Fatalf("write pid file: %v", err)
	}
	defer daemonctl.Cleanup(*pidFile)

	hostID, err := daemonctl.EnsureHostID(*hostIDFile)
	if err != nil {
		log.Fatalf("ensure host id: %v", err)
	}
	log.Printf("starting clipsyncd, host_id=%s", hostID)

	run(hostID, *httpAddr, *socketPath, *dbPath, *peersFile, *fanout, *antiEntropyInterval)
}

func run(hostID clock.HostID, httpAddr, socketPath, dbPath, peersFile string, fanout int, antiEntropyInterval time.Duration) {
	s, err := store.Open(dbPath, hostID)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer s.Close()

	if err := s.InsertSelf(hostID); err != nil {
		log.Fatalf("insert self clock row: %v", err)
	}

	disc := discovery.NewStaticFile(peersFile)
	repl := replicator.New(s, disc, hostID, fanout)
	defer repl.Close()

	httpLogger := log.New(os.Stderr, "[peerhttp] ", log.LstdFlags)
	httpServer := peerhttp.NewServer(httpAddr, s, repl, hostID, httpLogger)

	go func() {
		log.Printf("peer http surface listening on %s", httpAddr)
		if err := httpServer.ListenAndServe(); err != nil {
			log.Fatalf("peer http surface: %v", err)
		}
	}()

	files := fileupload.New(s.DB())
	cb := clipboard.NewWlClipboard()
	sockLogger := log.New(os.Stderr, "[localsock] ", log.LstdFlags)
	sock, err := localsock.Listen(socketPath, s, repl, cb, files, sockLogger)
	if err != nil {
		log.Fatalf("listen on local socket: %v", err)
	}
	go func() {
		log.Printf("local command surface listening on %s", socketPath)
		if err := sock.Serve(); err != nil {
			log.Fatalf("local command surface: %v", err)
		}
	}()

	antiEntropyTicker := time.NewTicker(antiEntropyInterval)
	defer antiEntropyTicker.Stop()
	go func() {
		for range antiEntropyTicker.C {
			repl.Tick()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down clipsyncd")
	sock.Close()
	if err := httpServer.Shutdown(15 * time.Second); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}
