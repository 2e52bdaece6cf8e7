package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"infovet/internal/router"
)

type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Message  string          `json:"message"`
	Error    string          `json:"error"`
	NotFound bool            `json:"not_found"`
}

func TestHTTP_EndToEnd_RegisterCreateLookupExport(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Registro del duenio => sesion + rol owner
	token, ownerID := registerOwner(t, ts.URL, "Ana Gomez", "ana@example.com", "secret1")

	// 2) Crear mascota con chip sin normalizar
	st, body := doReq(t, ts.URL, "POST", "/pets", token, map[string]any{
		"owner_id": ownerID,
		"name":     "Rex",
		"species":  "Dog",
		"breed":    "Labrador",
		"age":      3,
		"weight":   25,
		"chip":     " cl-001 ",
	})
	if st != http.StatusCreated {
		t.Fatalf("create pet: %d body=%s", st, body)
	}

	var created struct {
		ID         string `json:"id"`
		InternalID string `json:"internal_id"`
		Chip       string `json:"chip"`
		History    []any  `json:"history"`
	}
	decodeData(t, body, &created)

	if created.Chip != "CL-001" {
		t.Errorf("chip %q, esperaba CL-001", created.Chip)
	}
	wantPrefix := "MAS-" + time.Now().Format("2006") + "-"
	if !strings.HasPrefix(created.InternalID, wantPrefix) {
		t.Errorf("internal_id %q no empieza con %q", created.InternalID, wantPrefix)
	}
	if len(created.History) != 0 {
		t.Error("historial deberia venir vacio al crear")
	}

	// 3) Segundo registro con el mismo chip (otra variante) => conflicto,
	//    y sigue habiendo exactamente una mascota con ese chip
	st, body = doReq(t, ts.URL, "POST", "/pets", token, map[string]any{
		"owner_id": ownerID,
		"name":     "Otro",
		"species":  "Cat",
		"breed":    "Siames",
		"age":      1,
		"weight":   4,
		"chip":     "cl-001 ",
	})
	if st != http.StatusConflict {
		t.Fatalf("chip duplicado: esperaba 409, got %d body=%s", st, body)
	}

	st, body = doReq(t, ts.URL, "GET", "/pets?owner_id="+ownerID, token, nil)
	if st != http.StatusOK {
		t.Fatalf("list pets: %d", st)
	}
	var list []struct {
		Chip string `json:"chip"`
	}
	decodeData(t, body, &list)
	if len(list) != 1 {
		t.Fatalf("esperaba 1 mascota, hay %d", len(list))
	}

	// 4) Lookup por chip con casing distinto => ficha completa
	st, body = doReq(t, ts.URL, "GET", "/lookup/chip/cl-001", "", nil)
	if st != http.StatusOK {
		t.Fatalf("lookup chip: %d body=%s", st, body)
	}
	var found struct {
		ID    string `json:"id"`
		Owner *struct {
			Name string `json:"name"`
		} `json:"owner"`
		History []any `json:"history"`
	}
	decodeData(t, body, &found)
	if found.ID != created.ID {
		t.Fatal("lookup devolvio otra mascota")
	}
	if found.Owner == nil || found.Owner.Name != "Ana Gomez" {
		t.Fatal("duenio no adjunto en lookup")
	}

	// 5) Miss => not_found distinguido, sin error generico
	st, body = doReq(t, ts.URL, "GET", "/lookup/chip/ZZ-999", "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("miss: esperaba 404, got %d", st)
	}
	var miss envelope
	if err := json.Unmarshal(body, &miss); err != nil {
		t.Fatal(err)
	}
	if miss.Success || !miss.NotFound {
		t.Fatalf("miss deberia venir con not_found: %+v", miss)
	}
	if !strings.Contains(miss.Error, "ZZ-999") {
		t.Errorf("el mensaje de miss no menciona el chip: %q", miss.Error)
	}

	// 6) Validacion de chip en vivo, idempotente
	for i := 0; i < 2; i++ {
		var check struct {
			Exists bool `json:"exists"`
		}
		st, body = doReq(t, ts.URL, "GET", "/chips/CL-001/unique", "", nil)
		if st != http.StatusOK {
			t.Fatalf("chip check: %d", st)
		}
		decodeData(t, body, &check)
		if !check.Exists {
			t.Fatalf("llamada %d: chip registrado reporto libre", i+1)
		}
	}

	// 7) Historial fuera de orden => listado de mas reciente a mas antiguo
	for _, entry := range []map[string]any{
		{"date": "2024-01-01", "type": "Vacuna", "description": "Antirrabica", "vet": "Dr. Soto", "clinic": "Clinica Central"},
		{"date": "2023-06-15", "type": "Consulta", "description": "Control", "vet": "Dra. Rivas", "clinic": "Clinica Sur"},
		{"date": "2024-06-01", "type": "Cirugia", "description": "Esterilizacion", "vet": "Dr. Paz", "clinic": "Clinica Norte"},
	} {
		st, body = doReq(t, ts.URL, "POST", "/pets/"+created.ID+"/history", token, entry)
		if st != http.StatusCreated {
			t.Fatalf("add history: %d body=%s", st, body)
		}
	}

	st, body = doReq(t, ts.URL, "GET", "/pets/"+created.ID+"/history", "", nil)
	if st != http.StatusOK {
		t.Fatalf("list history: %d", st)
	}
	var entries []struct {
		Date string `json:"date"`
	}
	decodeData(t, body, &entries)
	wantDates := []string{"2024-06-01", "2024-01-01", "2023-06-15"}
	if len(entries) != len(wantDates) {
		t.Fatalf("esperaba %d entradas, hay %d", len(wantDates), len(entries))
	}
	for i, e := range entries {
		if e.Date != wantDates[i] {
			t.Errorf("posicion %d: %s, esperaba %s", i, e.Date, wantDates[i])
		}
	}

	// 8) Ficha exportada: texto plano, historial de mas reciente a mas antiguo
	resp := rawGet(t, ts.URL+"/records/chip/cl-001")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("record: %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "ficha-medica-Rex-CL-001.txt") {
		t.Errorf("content-disposition inesperado: %q", cd)
	}
	ficha, _ := io.ReadAll(resp.Body)
	text := string(ficha)
	if !strings.Contains(text, "HISTORIAL CLINICO") {
		t.Error("falta HISTORIAL CLINICO en la ficha")
	}
	paz := strings.Index(text, "Dr. Paz")
	soto := strings.Index(text, "Dr. Soto")
	rivas := strings.Index(text, "Dra. Rivas")
	if !(paz >= 0 && soto > paz && rivas > soto) {
		t.Errorf("veterinarios fuera de orden: paz=%d soto=%d rivas=%d", paz, soto, rivas)
	}

	// 9) Export por ID interno nombra el archivo con el ID
	resp2 := rawGet(t, ts.URL+"/records/id/"+created.InternalID)
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("record by id: %d", resp2.StatusCode)
	}
	if cd := resp2.Header.Get("Content-Disposition"); !strings.Contains(cd, created.InternalID) {
		t.Errorf("filename sin ID interno: %q", cd)
	}
}

func TestHTTP_AuthLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// crear mascota sin sesion => 401
	st, _ := doReq(t, ts.URL, "POST", "/pets", "", map[string]any{"name": "Rex"})
	if st != http.StatusUnauthorized {
		t.Fatalf("esperaba 401 sin sesion, got %d", st)
	}

	token, _ := registerOwner(t, ts.URL, "Ana Gomez", "ana@example.com", "secret1")

	// /me con sesion activa
	st, body := doReq(t, ts.URL, "GET", "/me", token, nil)
	if st != http.StatusOK {
		t.Fatalf("me: %d body=%s", st, body)
	}
	var me struct {
		Role string `json:"role"`
	}
	decodeData(t, body, &me)
	if me.Role != "owner" {
		t.Errorf("rol %q, esperaba owner", me.Role)
	}

	// login con credenciales malas => 401
	st, _ = doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "wrong",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("login malo: esperaba 401, got %d", st)
	}

	// logout invalida el token
	if st, _ = doReq(t, ts.URL, "POST", "/auth/logout", token, nil); st != http.StatusOK {
		t.Fatalf("logout: %d", st)
	}
	if st, _ = doReq(t, ts.URL, "GET", "/me", token, nil); st != http.StatusUnauthorized {
		t.Fatalf("token revocado sigue valido: %d", st)
	}

	// login de nuevo emite sesion fresca
	st, body = doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "secret1",
	})
	if st != http.StatusOK {
		t.Fatalf("login: %d body=%s", st, body)
	}
}

func TestHTTP_PetPhotoRoundTrip(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	token, ownerID := registerOwner(t, ts.URL, "Ana Gomez", "ana@example.com", "secret1")

	st, body := doReq(t, ts.URL, "POST", "/pets", token, map[string]any{
		"owner_id": ownerID,
		"name":     "Rex",
		"species":  "Dog",
		"breed":    "Labrador",
		"age":      3,
		"weight":   25,
		"chip":     "CL-002",
	})
	if st != http.StatusCreated {
		t.Fatalf("create pet: %d body=%s", st, body)
	}
	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, body, &created)

	photo := []byte("fake-png-bytes")
	req, err := http.NewRequest("PUT", ts.URL+"/pets/"+created.ID+"/photo", bytes.NewReader(photo))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "image/png")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload photo: %d", resp.StatusCode)
	}

	got := rawGet(t, ts.URL+"/pets/"+created.ID+"/photo")
	defer got.Body.Close()
	if got.StatusCode != http.StatusOK {
		t.Fatalf("get photo: %d", got.StatusCode)
	}
	if ct := got.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content-type %q", ct)
	}
	data, _ := io.ReadAll(got.Body)
	if !bytes.Equal(data, photo) {
		t.Error("la foto no sobrevivio el round-trip")
	}

	// mascota sin foto => miss distinguido
	st, body = doReq(t, ts.URL, "POST", "/pets", token, map[string]any{
		"owner_id": ownerID, "name": "Otro", "species": "Cat", "breed": "Siames",
		"age": 1, "weight": 4, "chip": "CL-003",
	})
	if st != http.StatusCreated {
		t.Fatalf("segundo pet: %d body=%s", st, body)
	}
	var second struct {
		ID string `json:"id"`
	}
	decodeData(t, body, &second)
	noPhoto := rawGet(t, ts.URL+"/pets/"+second.ID+"/photo")
	defer noPhoto.Body.Close()
	if noPhoto.StatusCode != http.StatusNotFound {
		t.Fatalf("sin foto: esperaba 404, got %d", noPhoto.StatusCode)
	}
}

func registerOwner(t *testing.T, baseURL, name, email, password string) (token, userID string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if st != http.StatusCreated {
		t.Fatalf("register: %d body=%s", st, body)
	}

	var session struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decodeData(t, body, &session)
	if session.Token == "" || session.User.ID == "" {
		t.Fatalf("register sin token/usuario: %s", body)
	}
	if session.User.Role != "owner" {
		t.Fatalf("rol %q, esperaba owner", session.User.Role)
	}
	return session.Token, session.User.ID
}

func decodeData(t *testing.T, body []byte, out any) {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("json invalido: %v body=%s", err, body)
	}
	if !env.Success {
		t.Fatalf("respuesta sin success: %s", body)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("data invalida: %v body=%s", err, body)
	}
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func rawGet(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	return resp
}
