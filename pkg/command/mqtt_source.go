package command

import (
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig MQTT 命令源配置
type MQTTConfig struct {
	Broker   string
	ClientID string
	Topic    string
	Username string
	Password string
	QoS      byte
}

// DefaultMQTTClientID 未配置客户端 ID 时使用
const DefaultMQTTClientID = "paperdoll"

// MQTTSource 从 MQTT 主题接收命令
//
// 每条消息可包含多行命令，逐行解析后推入 Queue；
// 回调运行在 paho 的 goroutine 中，不直接触碰纸娃娃系统。
type MQTTSource struct {
	client   mqtt.Client
	config   MQTTConfig
	queue    *Queue
	defaults Defaults
}

// NewMQTTSource 创建 MQTT 命令源（尚未连接）
func NewMQTTSource(cfg MQTTConfig, queue *Queue, defaults Defaults) *MQTTSource {
	if cfg.ClientID == "" {
		cfg.ClientID = DefaultMQTTClientID
	}
	s := &MQTTSource{
		config:   cfg,
		queue:    queue,
		defaults: defaults,
	}

	options := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(s.handleOnConnect)
	s.client = mqtt.NewClient(options)
	return s
}

// Start 连接 broker，订阅在连接（及重连）回调中完成
func (s *MQTTSource) Start() error {
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to %s: %w", s.config.Broker, token.Error())
	}
	return nil
}

// Close 断开连接
func (s *MQTTSource) Close() {
	if s.client.IsConnected() {
		s.client.Disconnect(250)
	}
}

func (s *MQTTSource) handleOnConnect(client mqtt.Client) {
	log.Printf("[MQTT] Connected to %s, subscribing %s", s.config.Broker, s.config.Topic)
	token := client.Subscribe(s.config.Topic, s.config.QoS, s.handleMessage)
	if token.Wait() && token.Error() != nil {
		log.Printf("[MQTT] Warning: subscribe %s failed: %v", s.config.Topic, token.Error())
	}
}

// handleMessage 解析消息负载中的每一行并入队
func (s *MQTTSource) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	for _, line := range strings.Split(string(msg.Payload()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := Parse(line, s.defaults)
		if err != nil {
			log.Printf("[MQTT] Warning: msg %d on %s: %v", msg.MessageID(), msg.Topic(), err)
			continue
		}
		s.queue.Push(cmd)
	}
}
