package command

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gonewx/paperdoll/pkg/embedded"
)

// Step 脚本中的一步：一条命令或一次等待
type Step struct {
	// Line 源文件行号（1 基）
	Line int

	// Command 要执行的命令；Wait > 0 时为空
	Command Command

	// Wait 等待的帧数
	Wait int
}

// Script 已解析的命令脚本
//
// 文本格式：每行一条命令；"wait N" 暂停 N 帧；"#" 开头的行和空行被忽略。
type Script struct {
	Steps []Step
}

// ParseScript 解析脚本
// 无法解析的行记录警告并跳过；只有读取失败时返回错误
func ParseScript(r io.Reader, defaults Defaults) (*Script, error) {
	script := &Script{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if fields := strings.Fields(line); strings.EqualFold(fields[0], "wait") {
			frames := 0
			if len(fields) > 1 {
				frames, _ = strconv.Atoi(fields[1])
			}
			if frames <= 0 {
				log.Printf("[Script] Warning: line %d: invalid wait %q, skipped", lineNo, line)
				continue
			}
			script.Steps = append(script.Steps, Step{Line: lineNo, Wait: frames})
			continue
		}

		cmd, err := Parse(line, defaults)
		if err != nil {
			log.Printf("[Script] Warning: line %d: %v", lineNo, err)
			continue
		}
		script.Steps = append(script.Steps, Step{Line: lineNo, Command: cmd})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return script, nil
}

// LoadScript 从嵌入资源或磁盘加载脚本
func LoadScript(path string, defaults Defaults) (*Script, error) {
	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("无法读取脚本 %s: %w", path, err)
	}
	return ParseScript(bytes.NewReader(data), defaults)
}

// ScriptPlayer 逐帧播放脚本
//
// 每个 tick 调用一次 Update：执行命令直到遇到 wait 或脚本结束。
// "wait N" 之后的 N 个 tick 什么都不做。
type ScriptPlayer struct {
	script   *Script
	dispatch func(Command)

	pc   int
	wait int

	// Loop 播放结束后从头开始
	Loop bool
}

// NewScriptPlayer 创建脚本播放器
func NewScriptPlayer(script *Script, dispatch func(Command)) *ScriptPlayer {
	return &ScriptPlayer{
		script:   script,
		dispatch: dispatch,
	}
}

// Update 推进一帧
func (p *ScriptPlayer) Update() {
	if p.script == nil {
		return
	}
	if p.wait > 0 {
		p.wait--
		return
	}

	for p.pc < len(p.script.Steps) {
		step := p.script.Steps[p.pc]
		p.pc++
		if step.Wait > 0 {
			p.wait = step.Wait
			return
		}
		p.dispatch(step.Command)
	}

	if p.Loop && len(p.script.Steps) > 0 {
		p.pc = 0
	}
}

// Done 返回脚本是否已播放完毕（循环播放时永远为 false）
func (p *ScriptPlayer) Done() bool {
	if p.script == nil {
		return true
	}
	return !p.Loop && p.pc >= len(p.script.Steps) && p.wait == 0
}

// Reset 从头开始播放
func (p *ScriptPlayer) Reset() {
	p.pc = 0
	p.wait = 0
}
