package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	. "github.com/trezcool/tathmini/apps/api/echo"
	"github.com/trezcool/tathmini/core/evaluation"
	"github.com/trezcool/tathmini/core/school"
	"github.com/trezcool/tathmini/core/user"
	emailsvc "github.com/trezcool/tathmini/services/email"
	logsvc "github.com/trezcool/tathmini/services/logger"
	inmemdb "github.com/trezcool/tathmini/storage/database/inmem"
)

var (
	app      Server
	usrRepo  user.Repository
	schRepo  school.Repository
	evalRepo evaluation.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func TestMain(m *testing.M) {
	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		fmt.Printf("inmemdb.Open(): %v", err)
		os.Exit(1)
	}
	usrRepo = inmemdb.NewUserRepository(db)
	schRepo = inmemdb.NewSchoolRepository(db)
	evalRepo = inmemdb.NewEvaluationRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock()
	logger := logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))

	// set up server
	app = NewServer(
		&Options{
			DisableReqLogs: true,
			UserSvc:        user.NewService(usrRepo),
			SchoolSvc:      school.NewService(schRepo),
			EvaluationSvc:  evaluation.NewService(evalRepo, mailSvc, logger),
			Logger:         logger,
		},
	)

	os.Exit(m.Run())
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func createUser(t *testing.T, uname, pwd string) user.User {
	t.Helper()
	usr := user.User{Username: uname}
	if err := usr.SetPassword(pwd); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}
	usr, err := usrRepo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
