// Package replay 录制与回放一局模拟的逐帧输入
//
// 模拟在固定随机种子与相同输入序列下结果可复现。录像只保存种子、缩放、
// 每帧的 dt 与输入，以及结束时的汇总；回放时重新推进模拟并与汇总比对。
package replay

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/simulation"
	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// FormatVersion 录像格式版本
const FormatVersion = 1

var (
	// ErrUnsupportedVersion 录像版本与当前格式不符
	ErrUnsupportedVersion = errors.New("unsupported recording version")
	// ErrDiverged 回放结果与录制时的汇总不一致
	ErrDiverged = errors.New("replay diverged from recording")
)

// Frame 一帧的输入
type Frame struct {
	Dt        float64 `msgpack:"dt"`
	MoveX     int8    `msgpack:"mx,omitempty"`
	MoveY     int8    `msgpack:"my,omitempty"`
	PointerDX float64 `msgpack:"px,omitempty"`
	PointerDY float64 `msgpack:"py,omitempty"`
}

// Input 还原为模拟输入
func (f Frame) Input() components.MovementInput {
	return components.MovementInput{
		MoveX:     int(f.MoveX),
		MoveY:     int(f.MoveY),
		PointerDX: f.PointerDX,
		PointerDY: f.PointerDY,
	}
}

// Summary 一局结束时的汇总
type Summary struct {
	Frames       int     `msgpack:"frames"`
	Elapsed      float64 `msgpack:"elapsed"`
	Score        int     `msgpack:"score"`
	TimeLeft     int     `msgpack:"timeLeft"`
	Phase        string  `msgpack:"phase"`
	Boss         string  `msgpack:"boss"`
	GunStacks    int     `msgpack:"gunStacks"`
	SpeedStacks  int     `msgpack:"speedStacks"`
	Hazards      int     `msgpack:"hazards"`
	Collectibles int     `msgpack:"collectibles"`
	PowerUps     int     `msgpack:"powerUps"`
	Effects      int     `msgpack:"effects"`
}

// Summarize 读取模拟当前状态生成汇总
func Summarize(sim *simulation.Simulation, frames, effects int) Summary {
	return Summary{
		Frames:       frames,
		Elapsed:      sim.Ledger().Elapsed(),
		Score:        sim.ScoreDisplay(),
		TimeLeft:     sim.TimeDisplay(),
		Phase:        sim.Phase().String(),
		Boss:         sim.Boss().State().String(),
		GunStacks:    sim.Gun().Stacks(),
		SpeedStacks:  sim.Modifiers().SpeedStacks(),
		Hazards:      len(sim.Hazards()),
		Collectibles: len(sim.Collectibles()),
		PowerUps:     len(sim.PowerUps()),
		Effects:      effects,
	}
}

// Recording 一局的录像
type Recording struct {
	Version int     `msgpack:"v"`
	RunID   string  `msgpack:"id"`
	Seed    uint64  `msgpack:"seed"`
	Scale   float64 `msgpack:"scale"`
	Frames  []Frame `msgpack:"frames"`
	Final   Summary `msgpack:"final"`
}

// Recorder 边推进边录制
type Recorder struct {
	rec     Recording
	effects int
}

// NewRecorder 创建录制器并分配新的局 ID
func NewRecorder(seed uint64, scale float64) *Recorder {
	return &Recorder{rec: Recording{
		Version: FormatVersion,
		RunID:   ulid.Make().String(),
		Seed:    seed,
		Scale:   scale,
	}}
}

// Step 推进模拟一帧并记录输入
//
// 参数:
//   - sim: 模拟核心
//   - dt: 已夹紧的帧间隔（秒）
//   - in: 本帧输入
func (r *Recorder) Step(sim *simulation.Simulation, dt float64, in components.MovementInput) {
	r.rec.Frames = append(r.rec.Frames, Frame{
		Dt:        dt,
		MoveX:     int8(in.MoveX),
		MoveY:     int8(in.MoveY),
		PointerDX: in.PointerDX,
		PointerDY: in.PointerDY,
	})
	sim.Tick(dt, in)
	r.effects += len(sim.DrainEffects())
}

// Finish 写入结束汇总并返回录像
func (r *Recorder) Finish(sim *simulation.Simulation) *Recording {
	r.rec.Final = Summarize(sim, len(r.rec.Frames), r.effects)
	out := r.rec
	return &out
}

// Play 在 sim 上重放录像的全部帧
//
// sim 应由与录像相同的配置、种子和缩放创建。
//
// 返回:
//   - Summary: 回放结束时的汇总
//   - error: 汇总与录像不一致时返回包装 ErrDiverged 的错误
func Play(sim *simulation.Simulation, rec *Recording) (Summary, error) {
	effects := 0
	for _, f := range rec.Frames {
		sim.Tick(f.Dt, f.Input())
		effects += len(sim.DrainEffects())
	}
	got := Summarize(sim, len(rec.Frames), effects)
	if got != rec.Final {
		return got, fmt.Errorf("%w: run %s score %d vs %d, phase %s vs %s",
			ErrDiverged, rec.RunID, got.Score, rec.Final.Score, got.Phase, rec.Final.Phase)
	}
	log.Printf("[Replay] Run %s verified (%d frames)", rec.RunID, len(rec.Frames))
	return got, nil
}

// Encode 以 msgpack 写出录像
func Encode(w io.Writer, rec *Recording) error {
	if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("failed to encode recording: %w", err)
	}
	return nil
}

// Decode 读取并校验录像
func Decode(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode recording: %w", err)
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, rec.Version)
	}
	if _, err := ulid.Parse(rec.RunID); err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", rec.RunID, err)
	}
	return &rec, nil
}

// Save 写入录像文件
func Save(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load 读取录像文件
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
