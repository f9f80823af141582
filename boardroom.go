package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wansing/boardroom/core"
	"github.com/wansing/boardroom/sqldb"
	"github.com/wansing/boardroom/sqldb/mysql"
	"github.com/wansing/boardroom/sqldb/sqlite3"
	"github.com/wansing/boardroom/util"
	"github.com/wansing/boardroom/web"
	"github.com/xo/dburl"
	"golang.org/x/crypto/ssh/terminal"
	"gopkg.in/ini.v1"
)

func init() {
	log.SetFlags(0) // no log prefixes, on most systems systemd-journald adds them
}

func main() {

	_ = godotenv.Load() // .env is optional

	var dbArg string // is in both FlagSets

	// default FlagSet

	// Your reverse proxy must not strip the prefix. So if you're using nginx, the "proxy_pass" value should not end with a slash.
	var base = flag.String("base", "", "strip off this `prefix` from every HTTP request and prepended it to every link")
	flag.StringVar(&dbArg, "db", "sqlite3:boardroom.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared", "sql database url, see github.com/xo/dburl")
	var listenAddr = flag.String("listen", "127.0.0.1:8080", "serve HTTP content at this `ip:port`")
	var secureCookies = flag.Bool("secure-cookies", false, "set the Secure attribute on cookies, enable when serving via HTTPS")

	// init FlagSet

	var initFlags = flag.NewFlagSet("init", flag.ExitOnError)
	var initCodes = initFlags.Bool("codes", false, "prompts for the user and guest access codes and writes them to config/auth.ini")

	if len(os.Args) > 1 && os.Args[1] == "init" {
		initFlags.Parse(os.Args[2:])
	} else {
		flag.Parse()
	}

	if initFlags.Parsed() {
		if *initCodes {
			writeCodes()
		}
		return
	}

	// access codes

	var codes = loadCodes()
	if codes.User == "" && codes.Guest == "" {
		log.Println("no access codes configured, nobody will be able to log in, see boardroom init -codes")
	}

	// database

	dbURL, err := dburl.Parse(dbArg)
	if err != nil {
		log.Printf("could not parse database url: %v", err)
		return
	}

	sqlDB, err := sql.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		log.Printf("could not open sql database: %v", err)
		return
	}

	if err = sqlDB.Ping(); err != nil {
		log.Printf("could not ping sql database: %v", err)
		return
	}

	log.Printf("using database %s", dbURL.String())

	// base

	*base = strings.Trim(*base, "/")
	if *base != "" {
		*base = "/" + *base
	}

	// assemble stuff

	var sessionStore scs.Store
	switch dbURL.Driver {
	case "mysql":
		sessionStore = mysql.NewSessionStore(sqlDB)
	case "sqlite3":
		sessionStore = sqlite3.NewSessionStore(sqlDB)
	default:
		log.Printf("unknown database backend: %s", dbURL.Driver)
		return
	}

	db := &core.CoreDB{}
	db.Codes = codes
	db.SecureCookies = *secureCookies
	db.Init(sessionStore, *base)

	db.BoardDB = sqldb.NewBoardDB(sqlDB)
	db.ProjectDB = sqldb.NewProjectDB(sqlDB)
	db.SqlDB = sqlDB

	defer func() {
		log.Println("closing database")
		sqlDB.Close()
	}()

	listen(db, *listenAddr, *base)
}

// loadCodes reads the access codes from config/auth.ini, the environment
// overrides the file. Missing sources are fine, a missing code just means
// that nobody can log in with that role.
func loadCodes() core.Codes {

	var codes core.Codes

	if cfg, err := util.Ini("auth.ini"); err == nil {
		codes.User = cfg["user-code"]
		codes.Guest = cfg["guest-code"]
	}

	if val, ok := os.LookupEnv("USER_CODE"); ok {
		codes.User = val
	}
	if val, ok := os.LookupEnv("GUEST_CODE"); ok {
		codes.Guest = val
	}

	return codes
}

func writeCodes() {

	fmt.Printf("user code: ")
	userCode, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading user code: %v", err)
		return
	}

	fmt.Printf("guest code: ")
	guestCode, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading guest code: %v", err)
		return
	}

	var cfg = ini.Empty()
	cfg.Section("").Key("user-code").SetValue(string(userCode))
	cfg.Section("").Key("guest-code").SetValue(string(guestCode))

	if err := os.MkdirAll("config", 0700); err != nil {
		log.Printf("error creating config directory: %v", err)
		return
	}

	if err := cfg.SaveTo("config/auth.ini"); err != nil {
		log.Printf("error writing config/auth.ini: %v", err)
		return
	}

	log.Println("wrote config/auth.ini")
}

func listen(db *core.CoreDB, addr string, base string) {

	// mux
	//
	// golang mux recovers from panics, so the program won't crash

	var mux = http.NewServeMux()
	util.HandlePrefix(mux, base+"/static", http.FileServer(http.Dir("static")))
	util.HandlePrefix(mux, base, core.Gate(web.NewRouter(db, base)))

	// listener and listen

	sigintChannel := make(chan os.Signal, 1)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Println(err)
		return
	}

	log.Printf("listening to %s", addr)

	httpSrv := &http.Server{
		Handler:      db.SessionManager.LoadAndSave(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if err != http.ErrServerClosed {
				log.Printf("error listening: %v", err)
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	log.Println("shutting down")
	httpSrv.Close()
}
