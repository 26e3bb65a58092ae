package service

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

// Acceptance runs the whole API surface against a live handler. It is reused
// by the api tests and by the documentation generator.
func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	userColumns := []JSON{
		{"name": "id", "kind": "int"},
		{"name": "name", "kind": "string"},
		{"name": "age", "kind": "int"},
	}

	a.Alternative("Create table", func(a *biff.A) {
		resp := apiRequest("POST", "/tables").
			WithBodyJson(JSON{
				"name":    "users",
				"columns": userColumns,
			}).Do()
		Save(resp, "Create table", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		expectedBody := JSON{
			"name":    "users",
			"total":   0,
			"indexes": 0,
			"schema":  userColumns,
		}
		biff.AssertEqualJson(resp.BodyJson(), expectedBody)

		a.Alternative("Retrieve table", func(a *biff.A) {
			resp := apiRequest("GET", "/tables/users").Do()
			Save(resp, "Retrieve table", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), expectedBody)
		})

		a.Alternative("List tables", func(a *biff.A) {
			resp := apiRequest("GET", "/tables").Do()
			Save(resp, "List tables", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{expectedBody})
		})

		a.Alternative("Retrieve schema", func(a *biff.A) {
			resp := apiRequest("GET", "/tables/users/schema").Do()
			Save(resp, "Retrieve schema", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), userColumns)
		})

		a.Alternative("Create table again", func(a *biff.A) {
			resp := apiRequest("POST", "/tables").
				WithBodyJson(JSON{
					"name":    "users",
					"columns": userColumns,
				}).Do()
			Save(resp, "Create table - conflict", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("Create table - bad column kind", func(a *biff.A) {
			resp := apiRequest("POST", "/tables").
				WithBodyJson(JSON{
					"name":    "broken",
					"columns": []JSON{{"name": "id", "kind": "rainbow"}},
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Drop table", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/users:dropTable").Do()
			Save(resp, "Drop table", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			a.Alternative("Get dropped table", func(a *biff.A) {
				resp := apiRequest("GET", "/tables/users").Do()
				Save(resp, "Retrieve table - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Insert one", func(a *biff.A) {
			myRow := JSON{
				"id":   1,
				"name": "Fulanez",
				"age":  33,
			}
			resp := apiRequest("POST", "/tables/users:insert").
				WithBodyJson(myRow).Do()
			Save(resp, "Insert one", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqual(resp.BodyString(), "")

			a.Alternative("Find with fullscan", func(a *biff.A) {
				resp := apiRequest("POST", "/tables/users:find").
					WithBodyJson(JSON{
						"mode":  "fullscan",
						"limit": 1,
						"filter": JSON{
							"name": "Fulanez",
						},
					}).Do()
				Save(resp, "Find - fullscan", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), myRow)
			})

			a.Alternative("Read rows", func(a *biff.A) {
				resp := apiRequest("GET", "/tables/users/rows").Do()
				Save(resp, "Read rows", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(resp.Header.Get("Content-Type"), "application/x-ndjson")
				biff.AssertEqualJson(resp.BodyJson(), myRow)
			})

			a.Alternative("Read columns", func(a *biff.A) {
				resp := apiRequest("GET", "/tables/users/columns").Do()
				Save(resp, "Read columns", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				expectedBody := JSON{
					"id":   []int{1},
					"name": []string{"Fulanez"},
					"age":  []int{33},
				}
				biff.AssertEqualJson(resp.BodyJson(), expectedBody)
			})
		})

		a.Alternative("Insert - wrong type", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/users:insert").
				WithBodyJson(JSON{
					"id":   "one",
					"name": "Fulanez",
					"age":  33,
				}).Do()
			Save(resp, "Insert - wrong type", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("Insert - missing column", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/users:insert").
				WithBodyJson(JSON{
					"id": 1,
				}).Do()
			Save(resp, "Insert - missing column", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("Insert many", func(a *biff.A) {

			myRows := []JSON{
				{"id": 1, "name": "Alfonso", "age": 44},
				{"id": 2, "name": "Gerardo", "age": 22},
				{"id": 3, "name": "Alfonso", "age": 33},
			}

			body := ""
			for _, myRow := range myRows {
				serialized, _ := json.Marshal(myRow)
				body += string(serialized) + "\n"
			}
			resp := apiRequest("POST", "/tables/users:insert").
				WithBodyString(body).Do()
			Save(resp, "Insert many", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)

			a.Alternative("Find with fullscan and filter", func(a *biff.A) {
				resp := apiRequest("POST", "/tables/users:find").
					WithBodyJson(JSON{
						"limit": 10,
						"filter": JSON{
							"name": "Alfonso",
						},
					}).Do()
				Save(resp, "Find - fullscan with filter", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				dec := json.NewDecoder(strings.NewReader(resp.BodyString()))
				for _, expected := range []JSON{myRows[0], myRows[2]} {
					var bodyRow interface{}
					dec.Decode(&bodyRow)
					biff.AssertEqualJson(bodyRow, expected)
				}
			})

			a.Alternative("Create unique index", func(a *biff.A) {
				resp := apiRequest("POST", "/tables/users:createIndex").
					WithBodyJson(JSON{"column": "id", "type": "unique"}).Do()
				Save(resp, "Create index - unique", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"column": "id",
					"type":   "unique",
					"sparse": false,
				})

				a.Alternative("Find by unique index", func(a *biff.A) {
					resp := apiRequest("POST", "/tables/users:find").
						WithBodyJson(JSON{
							"mode":   "unique",
							"column": "id",
							"value":  "2",
						}).Do()
					Save(resp, "Find - unique", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), myRows[1])
				})

				a.Alternative("List indexes", func(a *biff.A) {
					resp := apiRequest("POST", "/tables/users:listIndexes").Do()
					Save(resp, "List indexes", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), []string{"id"})
				})

				a.Alternative("Insert - unique index conflict", func(a *biff.A) {
					resp := apiRequest("POST", "/tables/users:insert").
						WithBodyJson(JSON{"id": 2, "name": "Impostor", "age": 99}).Do()
					Save(resp, "Insert - unique index conflict", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusConflict)
				})
			})

			a.Alternative("Create ordered index", func(a *biff.A) {
				resp := apiRequest("POST", "/tables/users:createIndex").
					WithBodyJson(JSON{"column": "age", "type": "ordered"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)

				a.Alternative("Find ordered", func(a *biff.A) {
					resp := apiRequest("POST", "/tables/users:find").
						WithBodyJson(JSON{
							"mode":   "ordered",
							"column": "age",
							"limit":  10,
						}).Do()
					Save(resp, "Find - ordered", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					dec := json.NewDecoder(strings.NewReader(resp.BodyString()))
					for _, expected := range []JSON{myRows[1], myRows[2], myRows[0]} {
						var bodyRow interface{}
						dec.Decode(&bodyRow)
						biff.AssertEqualJson(bodyRow, expected)
					}
				})

				a.Alternative("Find ordered reverse", func(a *biff.A) {
					resp := apiRequest("POST", "/tables/users:find").
						WithBodyJson(JSON{
							"mode":    "ordered",
							"column":  "age",
							"reverse": true,
							"limit":   1,
						}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), myRows[0])
				})
			})

		})

	})

	a.Alternative("Find on missing table", func(a *biff.A) {
		resp := apiRequest("POST", "/tables/nope:find").
			WithBodyJson(JSON{}).Do()
		Save(resp, "Find - table not found", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})
}
