package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/decker502/planetary/pkg/config"
	"github.com/decker502/planetary/pkg/kinematics"
	"github.com/decker502/planetary/pkg/render"
	"github.com/decker502/planetary/pkg/scene"
)

// errBadQuery 查询参数错误，对应 400
var errBadQuery = errors.New("bad query")

func newHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/train.svg", handleTrain)
	mux.HandleFunc("/derive", handleDerive)
	return mux
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

// handleTrain 渲染 t 毫秒时刻的齿轮系
// 状态由时间直接算出，不依赖会话
func handleTrain(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sc, elapsed, err := stageFromQuery(q)
	if err != nil {
		writeError(w, err)
		return
	}

	stage, err := scene.NewStageFromConfig(sc)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadQuery, err))
		return
	}
	stage.Update(elapsed)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.WriteSVG(w, stage.Snapshot()); err != nil {
		log.Printf("[Server] write svg: %v", err)
	}
}

// deriveResponse /derive 的返回体
type deriveResponse struct {
	Sun     int    `json:"sun"`
	Planet  int    `json:"planet"`
	Ring    int    `json:"ring"`
	Derived string `json:"derived"`
}

func handleDerive(w http.ResponseWriter, r *http.Request) {
	teeth, member, err := teethFromQuery(r.URL.Query())
	if err == nil && member == kinematics.MemberNone {
		err = fmt.Errorf("%w: exactly two of sun, planet, ring are required", errBadQuery)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(deriveResponse{
		Sun:     teeth.Sun,
		Planet:  teeth.Planet,
		Ring:    teeth.Ring,
		Derived: member.String(),
	}); err != nil {
		log.Printf("[Server] write json: %v", err)
	}
}

// stageFromQuery 由查询参数构造舞台配置
// 未给出齿数时使用默认舞台
func stageFromQuery(q url.Values) (config.StageConfig, float64, error) {
	sc := config.DefaultStageConfig()
	sc.Name = "http"

	if q.Get("sun") != "" || q.Get("planet") != "" || q.Get("ring") != "" {
		teeth, member, err := teethFromQuery(q)
		if err != nil {
			return sc, 0, err
		}
		sc.Teeth = config.TeethConfig{Sun: teeth.Sun, Planet: teeth.Planet, Ring: teeth.Ring}
		if member != kinematics.MemberNone {
			sc.Derive = member.String()
		}
	}

	if v := q.Get("planets"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > config.MaxPlanetCount {
			return sc, 0, fmt.Errorf("%w: planets must be 0..%d", errBadQuery, config.MaxPlanetCount)
		}
		sc.SetPlanets(n)
	}

	var elapsed float64
	if v := q.Get("t"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil || t < 0 {
			return sc, 0, fmt.Errorf("%w: t must be a non-negative number of milliseconds", errBadQuery)
		}
		elapsed = t
	}
	return sc, elapsed, nil
}

// teethFromQuery 读取齿数参数
// 恰好给出两个时推导第三个并返回被推导的构件；三个都给出时原样返回
func teethFromQuery(q url.Values) (kinematics.Teeth, kinematics.Member, error) {
	values := map[kinematics.Member]string{
		kinematics.MemberSun:    q.Get("sun"),
		kinematics.MemberPlanet: q.Get("planet"),
		kinematics.MemberRing:   q.Get("ring"),
	}
	missing := kinematics.MemberNone
	given := 0
	for _, m := range []kinematics.Member{kinematics.MemberSun, kinematics.MemberPlanet, kinematics.MemberRing} {
		if values[m] == "" {
			missing = m
		} else {
			given++
		}
	}

	switch given {
	case 3:
		var t kinematics.Teeth
		var err error
		if t.Sun, err = kinematics.ParseToothCount(values[kinematics.MemberSun]); err != nil {
			return t, missing, err
		}
		if t.Planet, err = kinematics.ParseToothCount(values[kinematics.MemberPlanet]); err != nil {
			return t, missing, err
		}
		if t.Ring, err = kinematics.ParseToothCount(values[kinematics.MemberRing]); err != nil {
			return t, missing, err
		}
		return t, kinematics.MemberNone, nil
	case 2:
		var inputs []string
		for _, m := range []kinematics.Member{kinematics.MemberSun, kinematics.MemberPlanet, kinematics.MemberRing} {
			if m != missing {
				inputs = append(inputs, values[m])
			}
		}
		t, err := kinematics.DeriveFromInput(missing, inputs[0], inputs[1])
		return t, missing, err
	default:
		return kinematics.Teeth{}, kinematics.MemberNone,
			fmt.Errorf("%w: at least two of sun, planet, ring are required", errBadQuery)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, errBadQuery) ||
		errors.Is(err, kinematics.ErrInvalidInput) ||
		errors.Is(err, kinematics.ErrImpossibleToothCount) {
		status = http.StatusBadRequest
	}
	log.Printf("[Server] %d: %v", status, err)
	http.Error(w, err.Error(), status)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Planetary Gears</title>
<style>
body { font-family: sans-serif; margin: 2em; }
img { width: 600px; height: 600px; display: block; }
input { width: 4em; }
</style>
</head>
<body>
<form id="teeth">
Sun <input name="sun" value="20">
Planet <input name="planet" value="16">
Ring <input name="ring" value="52">
Planets <input name="planets" value="8">
<button type="submit">Apply</button>
<span id="status"></span>
</form>
<img id="train" alt="planetary gear train">
<script>
const form = document.getElementById("teeth");
const img = document.getElementById("train");
const status = document.getElementById("status");
let query = new URLSearchParams(new FormData(form));
let loading = false;
const start = performance.now();

form.addEventListener("submit", (e) => {
  e.preventDefault();
  query = new URLSearchParams(new FormData(form));
  status.textContent = "";
});
img.addEventListener("load", () => { loading = false; });
img.addEventListener("error", () => {
  loading = false;
  status.textContent = "invalid tooth counts";
});

function poll() {
  if (!loading) {
    loading = true;
    const q = new URLSearchParams(query);
    q.set("t", Math.round(performance.now() - start));
    img.src = "/train.svg?" + q.toString();
  }
  requestAnimationFrame(poll);
}
requestAnimationFrame(poll);
</script>
</body>
</html>
`
